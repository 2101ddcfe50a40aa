package catalog

// Location is a catalog entry. Soft-deleted rows are never surfaced here.
type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateLocationRequest is the payload for creating a location
type CreateLocationRequest struct {
	Name string `json:"name" binding:"required"`
}
