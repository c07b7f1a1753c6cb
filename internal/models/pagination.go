package models

// PaginationInfo describes the page that was returned
type PaginationInfo struct {
	TotalElements int64 `json:"total_elements" example:"10"`
	Page          int   `json:"page" example:"2"`
	Size          int   `json:"size" example:"3"`
	Pages         int   `json:"pages" example:"4"`
}

// Links holds navigation URLs for a paginated list
type Links struct {
	Self  string  `json:"self"`
	First string  `json:"first"`
	Last  string  `json:"last"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}
