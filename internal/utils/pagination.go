package utils

import (
	"math"
	"net/url"
	"strconv"

	"github.com/delesray/forum/internal/models"
)

// CalculatePaginationInfo calculates pagination metadata
func CalculatePaginationInfo(total int64, page, size int) models.PaginationInfo {
	return models.PaginationInfo{
		TotalElements: total,
		Page:          page,
		Size:          size,
		Pages:         int(math.Ceil(float64(total) / float64(size))),
	}
}

// CalculateOffset calculates the offset for database queries
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// HasNext reports whether items exist past the current page
func HasNext(info models.PaginationInfo) bool {
	return int64(info.Page)*int64(info.Size) < info.TotalElements
}

// HasPrevious reports whether the current page has a predecessor
func HasPrevious(info models.PaginationInfo) bool {
	return info.Page > 1
}

// BuildLinks derives navigation links from the URL of the current request.
// Only the page and size parameters are rewritten; every other query
// parameter is carried over.
func BuildLinks(current *url.URL, info models.PaginationInfo) models.Links {
	lastPage := info.Pages
	if lastPage < 1 {
		lastPage = 1
	}

	links := models.Links{
		Self:  current.String(),
		First: PageURL(current, 1, info.Size),
		Last:  PageURL(current, lastPage, info.Size),
	}
	if HasNext(info) {
		next := PageURL(current, info.Page+1, info.Size)
		links.Next = &next
	}
	if HasPrevious(info) {
		prev := PageURL(current, info.Page-1, info.Size)
		links.Prev = &prev
	}
	return links
}

// PageURL returns current with its page and size query parameters replaced
func PageURL(current *url.URL, page, size int) string {
	u := *current
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	u.RawQuery = query.Encode()
	return u.String()
}
