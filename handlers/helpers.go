package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

func errorBody(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

func successBody(data interface{}) gin.H {
	return gin.H{
		"success": true,
		"data":    data,
	}
}

// parseDate parses a date-only field ("2006-01-02"). Deadlines are
// day-granular; no time-of-day is stored.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
