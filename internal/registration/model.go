package registration

import "time"

type Sport string

const (
	SportCricket    Sport = "Cricket"
	SportFootball   Sport = "Football"
	SportVolleyball Sport = "Volleyball"
)

// Sports lists the choices in the order the form shows them.
var Sports = []Sport{SportCricket, SportFootball, SportVolleyball}

type Contest string

const (
	// ContestNone is the "nothing chosen" sentinel shown first in the form.
	ContestNone                 Contest = "--Select--"
	ContestFootballChampionship Contest = "Football Championship"
	ContestVolleyballChallenge  Contest = "Volleyball Challenge"
	ContestCricketLeague        Contest = "Cricket League"
)

// Contests lists the real contests (ContestNone excluded) in form order.
var Contests = []Contest{ContestFootballChampionship, ContestVolleyballChallenge, ContestCricketLeague}

var contestSlugs = map[Contest]string{
	ContestFootballChampionship: "football",
	ContestVolleyballChallenge:  "volleyball",
	ContestCricketLeague:        "cricket",
}

// Slug returns the URL/config key of c, or "" for ContestNone and unknown values.
func (c Contest) Slug() string {
	return contestSlugs[c]
}

func ContestBySlug(slug string) (Contest, bool) {
	for c, s := range contestSlugs {
		if s == slug {
			return c, true
		}
	}
	return "", false
}

type Photo struct {
	Filename string
	Data     []byte
}

// Submission is one form interaction. PaymentConfirmed is self-reported by
// the user and never checked against a payment provider.
type Submission struct {
	Name             string
	DateOfBirth      time.Time
	Address          string
	Mobile           string
	Sport            Sport
	Contest          Contest
	Photo            *Photo
	PaymentConfirmed bool
}

// Record is one row of the submission log.
type Record struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	Mobile      string `json:"mobile"`
	Sport       string `json:"sport"`
	Contest     string `json:"contest"`
	Photo       string `json:"photo"`
}

const DateLayout = "2006-01-02"

func NewRecord(s Submission, photoPath string) Record {
	return Record{
		Name:        s.Name,
		DateOfBirth: s.DateOfBirth.Format(DateLayout),
		Address:     s.Address,
		Mobile:      s.Mobile,
		Sport:       string(s.Sport),
		Contest:     string(s.Contest),
		Photo:       photoPath,
	}
}

// CardArtifact is the generated card ready to be shown or downloaded.
type CardArtifact struct {
	PNG         []byte
	Filename    string
	ContentType string
	Record      Record
}
