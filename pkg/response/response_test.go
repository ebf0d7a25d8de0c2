package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		count      int
		perPage    int
		page       int
		totalPages int
	}{
		{"exact multiple", 20, 10, 10, 1, 2},
		{"partial last page", 21, 1, 10, 3, 3},
		{"empty result", 0, 0, 10, 1, 0},
		{"single page", 3, 3, 10, 1, 1},
		{"zero per page", 5, 0, 0, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := NewMeta(tc.total, tc.count, tc.perPage, tc.page)
			assert.Equal(t, tc.total, meta.Total)
			assert.Equal(t, tc.count, meta.Count)
			assert.Equal(t, tc.perPage, meta.PerPage)
			assert.Equal(t, tc.page, meta.CurrentPage)
			assert.Equal(t, tc.totalPages, meta.TotalPages)
		})
	}
}
