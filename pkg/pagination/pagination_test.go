package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		totalPages int
		prev       *int
		next       *int
	}{
		{name: "first of many", total: 100, page: 1, limit: 10, totalPages: 10, next: intPtr(2)},
		{name: "middle", total: 25, page: 2, limit: 10, totalPages: 3, prev: intPtr(1), next: intPtr(3)},
		{name: "last partial page", total: 25, page: 3, limit: 10, totalPages: 3, prev: intPtr(2)},
		{name: "beyond last", total: 5, page: 4, limit: 10, totalPages: 1, prev: intPtr(3)},
		{name: "empty", total: 0, page: 1, limit: 10, totalPages: 0},
		{name: "empty on later page", total: 0, page: 3, limit: 10, totalPages: 0, prev: intPtr(2)},
		{name: "exact fit", total: 20, page: 2, limit: 10, totalPages: 2, prev: intPtr(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := New(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, meta.TotalRecords)
			assert.Equal(t, tt.page, meta.CurrentPage)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.prev, meta.PreviousPage)
			assert.Equal(t, tt.next, meta.NextPage)
		})
	}
}

func TestNewProperties(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for limit := 1; limit <= 12; limit++ {
			for page := 1; page <= 8; page++ {
				meta := New(total, page, limit)

				want := (total + limit - 1) / limit
				require.Equal(t, want, meta.TotalPages, "total=%d limit=%d", total, limit)
				require.Equal(t, page <= 1, meta.PreviousPage == nil, "total=%d limit=%d page=%d", total, limit, page)
				require.Equal(t, page >= meta.TotalPages, meta.NextPage == nil, "total=%d limit=%d page=%d", total, limit, page)
			}
		}
	}
}

func TestUnpaged(t *testing.T) {
	meta := Unpaged(7)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Nil(t, meta.NextPage)
	assert.Nil(t, meta.PreviousPage)

	empty := Unpaged(0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Nil(t, empty.NextPage)
}

func TestMetaJSONUsesNullForAbsentPages(t *testing.T) {
	raw, err := json.Marshal(New(100, 1, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalRecords":100,"currentPage":1,"totalPages":10,"nextPage":2,"previousPage":null}`, string(raw))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(0, 10))
}
