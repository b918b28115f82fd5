package keysetpager

import "errors"

var (
	// ErrMissingSort is returned when cursor pagination is requested without
	// any sort columns.
	ErrMissingSort = errors.New("cursor pagination requires a sort")
	// ErrSortChanged is returned when a continuation token is used with a sort
	// other than the one it was minted under.
	ErrSortChanged = errors.New("sort changed while using a continuation token")
	// ErrMalformedToken is returned when a continuation token cannot be decoded.
	// Callers should start over without a token.
	ErrMalformedToken = errors.New("malformed continuation token")
	// ErrInvalidBoundaryValue is returned when a last seen value cannot be
	// converted back to the type of its column.
	ErrInvalidBoundaryValue = errors.New("invalid boundary value")

	ErrInvalidSize         = errors.New("page size must be positive")
	ErrUnknownSortField    = errors.New("no field registered for sort column")
	ErrDuplicateSortColumn = errors.New("duplicate sort column")
	ErrNotComparable       = errors.New("values are not comparable")
)
