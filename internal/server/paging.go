package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// pageSize resolves the row cap for a list response. An explicit positive
// ?limit= wins; otherwise the display config default applies. Zero means
// unbounded.
func (s *Server) pageSize(c *gin.Context) int {
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return s.display.Current().DefaultPageSize
}

func capRows[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
