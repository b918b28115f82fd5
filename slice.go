package keysetpager

import (
	"encoding/json"
	"iter"
	"slices"
)

// Slice is one page of a cursor sequence. It is immutable once built.
//
// Size is the requested page size, except on the first page of a sequence
// (no continuation token supplied) where it holds the total number of rows
// matching the filter. Clients rely on this to show the number of pages up
// front, so it is kept even though it mixes two meanings in one field.
type Slice[T any] struct {
	content           []T
	hasNext           bool
	continuationToken string
	size              int
}

// NewSlice builds a Slice. HasNext is true only when a continuation token is
// present and content is not empty.
func NewSlice[T any](content []T, size int, continuationToken string) *Slice[T] {
	if content == nil {
		content = make([]T, 0)
	}

	return &Slice[T]{
		content:           slices.Clone(content),
		hasNext:           continuationToken != "" && len(content) > 0,
		continuationToken: continuationToken,
		size:              size,
	}
}

// Content returns a copy of the page rows.
func (s *Slice[T]) Content() []T {
	return slices.Clone(s.content)
}

// All iterates the page rows in order.
func (s *Slice[T]) All() iter.Seq[T] {
	return slices.Values(s.content)
}

// HasNext reports whether another page follows.
func (s *Slice[T]) HasNext() bool {
	return s.hasNext
}

// HasContent reports whether the page has rows.
func (s *Slice[T]) HasContent() bool {
	return len(s.content) > 0
}

// ContinuationToken returns the token for the next page, empty on the last one.
func (s *Slice[T]) ContinuationToken() string {
	return s.continuationToken
}

// NumberOfElements returns the number of rows on this page.
func (s *Slice[T]) NumberOfElements() int {
	return len(s.content)
}

// Size returns the requested page size, or the total row count on a first page.
func (s *Slice[T]) Size() int {
	return s.size
}

type sliceJSON[T any] struct {
	Content           []T    `json:"content"`
	HasNext           bool   `json:"hasNext"`
	ContinuationToken string `json:"continuationToken,omitempty"`
	Size              int    `json:"size"`
}

// MarshalJSON implements json.Marshaler.
func (s *Slice[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(sliceJSON[T]{
		Content:           s.content,
		HasNext:           s.hasNext,
		ContinuationToken: s.continuationToken,
		Size:              s.size,
	})
}

var _ json.Marshaler = (*Slice[any])(nil)
