package query

import "strings"

// DefaultCourseSort is applied when a listing does not ask for an order.
const DefaultCourseSort = "-createdDate"

// SortField is one key of an ordering. Field is a stored document field.
type SortField struct {
	Field      string
	Descending bool
}

// courseSortFields maps the sort keys clients may request to stored fields.
var courseSortFields = map[string]string{
	"createdDate": FieldCreatedDate,
}

// ParseSort parses a comma-separated sort string such as "-createdDate".
// A leading "-" sorts descending. Keys outside the allow-list are dropped.
func ParseSort(raw string) []SortField {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultCourseSort
	}

	parts := strings.Split(raw, ",")
	fields := make([]SortField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		key, desc := strings.CutPrefix(part, "-")
		field, ok := courseSortFields[key]
		if !ok {
			continue
		}
		fields = append(fields, SortField{Field: field, Descending: desc})
	}
	return fields
}
