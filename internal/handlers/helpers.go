package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/services"
	"github.com/delesray/forum/internal/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusByKind maps service error kinds to HTTP statuses
var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:      http.StatusBadRequest,
	services.KindConflict:        http.StatusBadRequest,
	services.KindUnauthenticated: http.StatusUnauthorized,
	services.KindForbidden:       http.StatusForbidden,
	services.KindNotFound:        http.StatusNotFound,
}

// respondError writes err as a JSON error. Errors that are not service
// errors become a 500 with fallback as the message and are sent to Sentry.
func respondError(c *gin.Context, err error, fallback string) {
	if status, ok := statusByKind[services.KindOf(err)]; ok {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logrus.WithField("request_id", c.GetString("request_id")).Errorf("%s: %v", fallback, err)
	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(c.Request)
	hub.Scope().SetTag("request_id", c.GetString("request_id"))
	hub.CaptureException(err)

	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
}

// parseIDParam reads a positive integer path parameter, answering 400 itself
// when it is malformed
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name, "details": err.Error()})
		return 0, false
	}
	return id, true
}

// parsePage validates the page and size query parameters against the
// configured bounds, answering 400 itself when they are out of range
func parsePage(c *gin.Context, paging config.PagingConfig) (services.PageRequest, bool) {
	page, err := queryInt(c, "page", 1)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return services.PageRequest{}, false
	}

	size, err := queryInt(c, "size", paging.DefaultSize)
	if err != nil || size < 1 || size > paging.MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(paging.MaxSize)})
		return services.PageRequest{}, false
	}

	return services.PageRequest{Page: page, Size: size, URL: requestURL(c)}, true
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// requestURL rebuilds the absolute URL the client asked for
func requestURL(c *gin.Context) *url.URL {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
	}
}
