package repositories

// SortDirection orders a listing by its sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListOptions controls cursor pagination over an owner-scoped listing.
// A Limit of zero disables pagination and returns the full result set
// with no continuation metadata.
type ListOptions struct {
	Limit         int
	Cursor        string
	SortDirection SortDirection
}

// Page is one window of a cursor-paginated result set. NextCursor is the
// id of the last returned record and is empty when HasMore is false.
type Page[T any] struct {
	Items      []T
	HasMore    bool
	NextCursor string
}
