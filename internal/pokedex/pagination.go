package pokedex

import "strconv"

// Pagination defaults for the catalog listing.
const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// PageParams is a normalized skip/limit window.
type PageParams struct {
	Page  int
	Limit int
	Skip  int
}

// ParsePageParams turns raw page/limit query values into a window. Absent,
// non-numeric or non-positive inputs fall back to the defaults, so Skip is
// never negative and Limit never zero.
func ParsePageParams(pageStr, limitStr string) PageParams {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	return PageParams{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// TotalPages returns ceil(total/limit) for a positive limit.
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
