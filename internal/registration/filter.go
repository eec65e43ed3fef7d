package registration

import "strings"

type FilterOptions struct {
	Sports    []string `json:"sports"`
	Contests  []string `json:"contests"`
	FreeWords string   `json:"free_words"`
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// Filter keeps the records matching every option that is set. Free words
// must all appear (case-insensitive) in the name, address or mobile number.
func Filter(records []Record, opt FilterOptions) []Record {
	out := []Record{}
	kw := strings.Fields(strings.ToLower(opt.FreeWords))
	for _, r := range records {
		if len(opt.Sports) > 0 && !containsFold(opt.Sports, r.Sport) {
			continue
		}
		if len(opt.Contests) > 0 && !containsFold(opt.Contests, r.Contest) {
			continue
		}
		if len(kw) > 0 {
			hay := strings.ToLower(r.Name + " " + r.Address + " " + r.Mobile)
			ok := true
			for _, k := range kw {
				if !strings.Contains(hay, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
