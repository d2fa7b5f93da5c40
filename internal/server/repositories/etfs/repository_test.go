package etfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderBy(t *testing.T) {
	cases := []struct {
		sortBy        string
		sortDirection string
		want          string
	}{
		{"", "", " ORDER BY ticker ASC"},
		{"ticker", "asc", " ORDER BY ticker ASC"},
		{"assetClass", "desc", " ORDER BY asset_class DESC"},
		{"assetClass", "DESC", " ORDER BY asset_class DESC"},
		{"expenseRatio", "", " ORDER BY ticker ASC"},
		{"ticker; DROP TABLE etf", "desc", " ORDER BY ticker DESC"},
	}

	for _, tc := range cases {
		f := ListFilter{SortBy: tc.sortBy, SortDirection: tc.sortDirection}
		assert.Equal(t, tc.want, f.OrderBy(), "sortBy=%q direction=%q", tc.sortBy, tc.sortDirection)
	}
}
