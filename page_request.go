package keysetpager

import (
	"fmt"
	"slices"
)

// RawPageRequest is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPageRequest `json:",inline"`
//	}
type RawPageRequest struct {
	// Size - maximum number of records to return in the response.
	Size int `json:"size" form:"size"`
	// ContinuationToken - token obtained from Slice.ContinuationToken().
	// If empty, the first page with Size records is returned.
	ContinuationToken string `json:"continuationToken" form:"continuationToken"`
	// Sort - list of "alias asc|desc" strings resolved through a ColumnMapping.
	Sort []string `json:"sort" form:"sort"`
}

// Decode converts RawPageRequest into PageRequest, normalizing Size with
// NormalizeLimit and resolving Sort aliases. defaultSort is used when Sort is
// empty.
func (p RawPageRequest) Decode(columnMapping ColumnMapping, defaultSort ...OrderBy) (PageRequest, error) {
	return p.DecodeMax(MaxLimit, columnMapping, defaultSort...)
}

// DecodeMax is Decode with a custom upper bound for Size.
func (p RawPageRequest) DecodeMax(maxSize int, columnMapping ColumnMapping, defaultSort ...OrderBy) (PageRequest, error) {
	orderings := Orderings(defaultSort)
	if len(p.Sort) > 0 {
		var err error
		orderings, err = ParseSort(p.Sort, columnMapping)
		if err != nil {
			return PageRequest{}, fmt.Errorf("cannot decode page request: %w", err)
		}
	}

	return PageRequest{
		continuationToken: p.ContinuationToken,
		size:              NormalizeLimitMax(p.Size, maxSize),
	}.WithSort(orderings...), nil
}

// PageRequest describes one cursor page: how many rows, in which order, and
// where to resume. It is a value; the With* methods return modified copies.
type PageRequest struct {
	continuationToken string
	size              int
	sort              Orderings
	unpaged           bool
}

// NewPageRequest returns a first-page request. size is normalized with
// NormalizeLimit.
func NewPageRequest(size int, orderBy ...OrderBy) PageRequest {
	return PageRequest{size: NormalizeLimit(size)}.WithSort(orderBy...)
}

// Unpaged returns the request carrying no pagination information. It reports
// UnpagedSize and has neither sort nor token, so FindAll rejects it with
// ErrMissingSort.
func Unpaged() PageRequest {
	return PageRequest{size: UnpagedSize, unpaged: true}
}

// WithToken sets the continuation token returned by the previous page.
func (r PageRequest) WithToken(token string) PageRequest {
	r.continuationToken = token
	r.unpaged = false

	return r
}

// WithSize sets the page size without normalization.
func (r PageRequest) WithSize(size int) PageRequest {
	r.size = size
	r.unpaged = false

	return r
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (r PageRequest) WithSubstitutedSort(orderBy ...OrderBy) PageRequest {
	r.sort = nil

	return r.WithSort(orderBy...)
}

// WithSort appends sort orderings without overwriting existing ones.
// A column that is already present is moved to the end with the new direction.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (r PageRequest) WithSort(orderBy ...OrderBy) PageRequest {
	if len(orderBy) == 0 {
		return r
	}

	r.sort = r.sort.withSort(orderBy...)
	r.unpaged = false

	return r
}

// ContinuationToken returns the token to resume from, empty on a first page.
func (r PageRequest) ContinuationToken() string {
	return r.continuationToken
}

// Size returns the requested number of rows.
func (r PageRequest) Size() int {
	return r.size
}

// Sort returns a copy of the requested orderings.
func (r PageRequest) Sort() Orderings {
	return slices.Clone(r.sort)
}

// IsFirstPage reports whether the request starts a new cursor sequence.
func (r PageRequest) IsFirstPage() bool {
	return r.continuationToken == ""
}

// IsPaged reports whether the request carries pagination information.
func (r PageRequest) IsPaged() bool {
	return !r.unpaged
}

// IsUnpaged is the inverse of IsPaged.
func (r PageRequest) IsUnpaged() bool {
	return r.unpaged
}

func (r PageRequest) validate() error {
	if err := r.sort.validate(); err != nil {
		return err
	}

	if r.size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, r.size)
	}

	return nil
}
