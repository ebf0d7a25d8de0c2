package handlers

import (
	"strconv"

	"github.com/circlio/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const defaultPageSize = 10

// getUserIDFromContext extracts the authenticated user's ID from the JWT claims
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// parsePagination reads page/limit query params with sane bounds
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = defaultPageSize
	}
	return page, limit
}
