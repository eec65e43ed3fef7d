package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []Record {
	return []Record{
		{Name: "John Doe", Address: "12 Main St", Mobile: "5551234", Sport: "Cricket", Contest: "Cricket League"},
		{Name: "Asha Rao", Address: "4 Lake Road", Mobile: "9876543", Sport: "Football", Contest: "Football Championship"},
		{Name: "Ravi Kumar", Address: "12 Hill View", Mobile: "5550000", Sport: "Volleyball", Contest: "Volleyball Challenge"},
	}
}

func names(rs []Record) []string {
	out := []string{}
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opt  FilterOptions
		want []string
	}{
		{"no options", FilterOptions{}, []string{"John Doe", "Asha Rao", "Ravi Kumar"}},
		{"sport", FilterOptions{Sports: []string{"football"}}, []string{"Asha Rao"}},
		{"two sports", FilterOptions{Sports: []string{"Cricket", "Volleyball"}}, []string{"John Doe", "Ravi Kumar"}},
		{"contest", FilterOptions{Contests: []string{"Cricket League"}}, []string{"John Doe"}},
		{"free words across fields", FilterOptions{FreeWords: "12 555"}, []string{"John Doe", "Ravi Kumar"}},
		{"free words all must match", FilterOptions{FreeWords: "ravi main"}, []string{}},
		{"combined", FilterOptions{Sports: []string{"Volleyball"}, FreeWords: "hill"}, []string{"Ravi Kumar"}},
		{"no match", FilterOptions{Contests: []string{"Chess Open"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(sampleRecords(), tt.opt)))
		})
	}
}
