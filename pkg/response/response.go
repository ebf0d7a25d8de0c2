package response

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the JSON shape every endpoint responds with
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Meta is the pagination block embedded in every paginated listing. All
// paginated endpoints emit exactly this shape.
type Meta struct {
	Total       int64 `json:"total"`
	Count       int   `json:"count"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// NewMeta computes pagination metadata from the page window
func NewMeta(total int64, count, perPage, currentPage int) Meta {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}
	return Meta{
		Total:       total,
		Count:       count,
		PerPage:     perPage,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
}

// Paginated wraps items and their pagination metadata
type Paginated struct {
	Items interface{} `json:"items"`
	Meta  Meta        `json:"meta"`
}

// OK sends a 200 success envelope
func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 success envelope
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Page sends a 200 success envelope with paginated data
func Page(c echo.Context, message string, items interface{}, meta Meta) error {
	return OK(c, message, Paginated{Items: items, Meta: meta})
}

// Error sends an error envelope with the given status
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}

// ValidationError sends a 422 envelope with field-level details
func ValidationError(c echo.Context, message string, errors interface{}) error {
	return c.JSON(http.StatusUnprocessableEntity, Envelope{Success: false, Message: message, Errors: errors})
}
