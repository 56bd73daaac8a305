// Package query describes filtered and joined course lookups as an ordered
// list of engine-neutral stages. Each store translates the stages into its own
// query language.
package query

import "github.com/noah-isme/educamedic-api/pkg/pagination"

// Op is the comparison a Restrict stage applies.
type Op string

const (
	// OpEq matches when the field equals Value.
	OpEq Op = "eq"
	// OpIn matches when the field equals one of the strings in Value ([]string).
	OpIn Op = "in"
	// OpContains matches when the list field contains Value.
	OpContains Op = "contains"
	// OpText is a full-text search of Value over the indexed text fields. Field is ignored.
	OpText Op = "text"
)

// Stage is either a Restrict or an Enrich.
type Stage interface {
	stage()
}

// Restrict narrows the working record set.
type Restrict struct {
	Field string
	Op    Op
	Value any
}

// Enrich left-joins ForeignCollection on ForeignKey, replacing the UUID list
// held in Field with the matched records. No match yields an empty list.
type Enrich struct {
	Field             string
	ForeignCollection string
	ForeignKey        string
}

func (Restrict) stage() {}
func (Enrich) stage()   {}

// Restrictions returns the Restrict stages of stages, in order.
func Restrictions(stages []Stage) []Restrict {
	out := make([]Restrict, 0, len(stages))
	for _, s := range stages {
		if r, ok := s.(Restrict); ok {
			out = append(out, r)
		}
	}
	return out
}

// Enrichments returns the Enrich stages of stages, in order.
func Enrichments(stages []Stage) []Enrich {
	out := make([]Enrich, 0, len(stages))
	for _, s := range stages {
		if e, ok := s.(Enrich); ok {
			out = append(out, e)
		}
	}
	return out
}

// PageOptions controls ordering and windowing of a lookup. Sorting, skip and
// limit only apply when Paged reports true.
type PageOptions struct {
	Page  int
	Limit int
	Sort  []SortField
}

// Paged reports whether both page and limit were supplied.
func (p PageOptions) Paged() bool {
	return p.Page > 0 && p.Limit > 0
}

// Skip returns the number of records preceding the requested page.
func (p PageOptions) Skip() int {
	return pagination.Offset(p.Page, p.Limit)
}
