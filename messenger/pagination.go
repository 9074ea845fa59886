package messenger

// Pagination is the envelope shared by the conversation and history
// endpoints.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: int64(page)*int64(limit) < total,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}

// ClampPage normalizes a requested page number: anything below 1 becomes
// page 1.
func (c Config) ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit normalizes a requested page size against the configured
// default and cap.
func (c Config) ClampLimit(limit int) int {
	if limit < 1 {
		return c.DefaultPageLimit
	}
	if limit > c.MaxPageLimit {
		return c.MaxPageLimit
	}
	return limit
}
