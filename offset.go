package keysetpager

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// PseudoCursor is used when an API requires cursor-based pagination but only
// LIMIT/OFFSET pagination is available.
//
// It generates a token based on the last offset within the dataset. Unlike
// keyset tokens it is not stable under concurrent inserts.
type PseudoCursor struct {
	offset int
}

func NewPseudoCursor(offset int) *PseudoCursor {
	return &PseudoCursor{
		offset: offset,
	}
}

// DecodePseudoCursor attempts to parse a base64-encoded string into *PseudoCursor.
func DecodePseudoCursor(b64String string) (*PseudoCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	offsetBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded pseudo cursor: %w", ErrMalformedToken, err)
	}

	offset, err := strconv.Atoi(string(offsetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode pseudo cursor offset value: %w", ErrMalformedToken, err)
	}

	if offset < 0 {
		return nil, fmt.Errorf("%w: negative pseudo cursor offset %d", ErrMalformedToken, offset)
	}

	return &PseudoCursor{
		offset: offset,
	}, nil
}

// String - implements fmt.Stringer.
func (p *PseudoCursor) String() string {
	if p == nil || p.offset == 0 {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(p.offset)))
}

// MarshalText encodes the cursor as its token, so nil and zero cursors become "".
func (p *PseudoCursor) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// IsEmpty reports whether the cursor points at the start of the dataset.
func (p *PseudoCursor) IsEmpty() bool {
	return p == nil || p.offset == 0
}

// GetOffset returns the numeric offset value.
func (p *PseudoCursor) GetOffset() int {
	if p != nil {
		return p.offset
	}

	return 0
}

// OffsetRequest is the legacy offset page request. Token is a PseudoCursor
// string, empty for the first page. Sort is optional but recommended, without
// it the backend order is unspecified.
type OffsetRequest struct {
	Token string
	Size  int
	Sort  Orderings
}

// Page is a legacy offset page.
type Page[T any] struct {
	// Items result elements.
	Items []T `json:"items"`
	// Total number of elements matching the filters.
	Total int64 `json:"total"`
	// Size effective size used for the query.
	Size int `json:"size"`
	// NextPageToken token for the next page, nil on the last page.
	NextPageToken *PseudoCursor `json:"nextPageToken,omitempty"`
}

// FindPage serves one page of the legacy offset paging: it skips the rows
// counted by the token, returns up to Size rows and the total count. A Size of
// NoLimit returns every remaining row.
func (p *Pager[T, P]) FindPage(ctx context.Context, req OffsetRequest, filters ...P) (*Page[T], error) {
	if req.Size < 1 && req.Size != NoLimit {
		return nil, fmt.Errorf("cannot paginate: %w: %d", ErrInvalidSize, req.Size)
	}

	if len(req.Sort) > 0 {
		if err := req.Sort.validate(); err != nil {
			return nil, fmt.Errorf("cannot paginate: %w", err)
		}
	}

	cursor, err := DecodePseudoCursor(req.Token)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	q := Query[P]{
		Where:  filters,
		Sort:   req.Sort,
		Limit:  NoLimit,
		Offset: cursor.GetOffset(),
	}
	if req.Size != NoLimit {
		q.Limit = req.Size + 1
	}

	resultSet, err := p.backend.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	total, err := p.backend.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	if resultSet == nil {
		resultSet = make([]T, 0)
	}

	page := &Page[T]{
		Items: resultSet,
		Total: total,
		Size:  req.Size,
	}
	if req.Size != NoLimit && !isLastPage(req.Size, resultSet) {
		page.Items = trimOvershoot(req.Size, resultSet)
		page.NextPageToken = NewPseudoCursor(cursor.GetOffset() + len(page.Items))
	}

	p.logger.Debug("fetched offset page",
		zap.Int("offset", cursor.GetOffset()),
		zap.Int("rows", len(page.Items)),
		zap.Int64("total", total),
	)

	return page, nil
}
