package request

const (
	defaultPage     = 1
	defaultPageSize = 50
)

type PaginationParams struct {
	Page     int `param:"page"`
	PageSize int `param:"pageSize"`
}

// NewPaginationParams returns params preloaded with the defaults, so a
// request without query parameters still paginates sanely.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Page:     defaultPage,
		PageSize: defaultPageSize,
	}
}
