package model

import "time"

// User represents a registered account. The password hash never leaves the
// server; it is excluded from every JSON response.
type User struct {
	UserID       string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Thought is a single short post. Hearts always equals the number of
// distinct users in LikedBy; the two are updated together in one store
// transaction.
type Thought struct {
	ThoughtID string    `json:"id"`
	Message   string    `json:"message"`
	Hearts    int       `json:"hearts"`
	Owner     string    `json:"owner"`
	LikedBy   []string  `json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SortField is the closed set of fields a listing may be ordered by.
type SortField string

// SortOrder is the closed set of listing directions.
type SortOrder string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByHearts    SortField = "hearts"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ValidSortField reports whether f is on the allow-list.
func ValidSortField(f SortField) bool {
	return f == SortByCreatedAt || f == SortByHearts
}

// ValidSortOrder reports whether o is on the allow-list.
func ValidSortOrder(o SortOrder) bool {
	return o == OrderAsc || o == OrderDesc
}

// ListThoughtsRequest captures filters, sorting and paging for a listing.
// Hearts and MinHearts are mutually exclusive; when both are set the exact
// match wins.
type ListThoughtsRequest struct {
	Page      int
	Limit     int
	Hearts    *int
	MinHearts *int
	SortBy    SortField
	Order     SortOrder
}

// PageMeta describes the pagination metadata returned beside a listing page.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}
