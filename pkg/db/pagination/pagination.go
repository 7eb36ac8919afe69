package pagination

// Pagination carries the common list-endpoint paging parameters.
type Pagination struct {
	PageSize int `form:"page_size,default=50" validate:"gte=1,lte=250"`
}

// Clamp keeps the page size inside the allowed bounds.
func (p Pagination) Clamp() int {
	switch {
	case p.PageSize <= 0:
		return 50
	case p.PageSize > 250:
		return 250
	default:
		return p.PageSize
	}
}
