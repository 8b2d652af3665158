package dto

const DefaultPageLimit = 20

type Filter struct {
	Limit  int    `query:"limit"`
	Page   int    `query:"page"`
	Search string `query:"search"`
}

// Offset returns the row offset for the page, or 0 when paging is off.
func (f Filter) Offset() int {
	if f.Limit <= 0 || f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// Normalize fills in paging defaults.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	return f
}
