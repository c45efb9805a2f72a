// Package dto provides request and response shapes for the HTTP API.
// Domain models carry their own JSON tags and serve as responses;
// request DTOs exist where input differs from the stored shape.
package dto

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}
