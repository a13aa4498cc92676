package storage

// Pagination bounds. Pages are 1-based; out-of-range values are clamped
// rather than rejected.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Page is one page of results together with the total number of matching
// records across all pages.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// ListOptions selects a page of records. A zero value yields the first page
// at the default size across all languages of the site.
type ListOptions struct {
	// Page is the 1-based page number. Values below 1 read as 1.
	Page int64

	// PerPage is the page size, clamped to [1, MaxPerPage]. Zero reads as
	// DefaultPerPage.
	PerPage int64

	// Language filters records by language. Empty matches every language.
	Language string
}

// bounds converts the options to a LIMIT/OFFSET pair.
func (o ListOptions) bounds() (limit, offset int64) {
	page := o.Page
	if page < 1 {
		page = 1
	}
	per := o.PerPage
	switch {
	case per <= 0:
		per = DefaultPerPage
	case per > MaxPerPage:
		per = MaxPerPage
	}
	return per, (page - 1) * per
}

// slicePage extracts the [offset, offset+limit) window of items. Windows
// past the end yield an empty slice.
func slicePage[T any](items []T, limit, offset int64) []T {
	n := int64(len(items))
	if offset >= n {
		return nil
	}
	end := offset + limit
	if end > n {
		end = n
	}
	return items[offset:end]
}
