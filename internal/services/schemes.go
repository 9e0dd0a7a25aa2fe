package services

import "sort"

// Scheme is one lottery configuration
type Scheme struct {
	ID           string  `json:"id"`
	Prefix       string  `json:"prefix"`
	Suffix       string  `json:"suffix"`
	Price        float64 `json:"price"`
	TotalTickets int     `json:"totalTickets"`
}

var schemeCatalog = map[string]Scheme{
	"1": {ID: "1", Prefix: "AB", Suffix: "A", Price: 100, TotalTickets: 10000},
	"2": {ID: "2", Prefix: "CD", Suffix: "B", Price: 200, TotalTickets: 10000},
	"3": {ID: "3", Prefix: "EF", Suffix: "C", Price: 500, TotalTickets: 10000},
	"4": {ID: "4", Prefix: "GH", Suffix: "D", Price: 1000, TotalTickets: 10000},
}

// LookupScheme returns the scheme with the given id.
func LookupScheme(id string) (Scheme, bool) {
	s, ok := schemeCatalog[id]
	return s, ok
}

// Schemes returns the catalog ordered by id.
func Schemes() []Scheme {
	out := make([]Scheme, 0, len(schemeCatalog))
	for _, s := range schemeCatalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ValidIndex reports whether index is inside the scheme's ticket range.
func (s Scheme) ValidIndex(index int) bool {
	return index >= 1 && index <= s.TotalTickets
}
