package keysetpager

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Pager serves keyset pages of T from a Backend with predicates of type P.
// A Pager holds no per-request state and is safe for concurrent use as long as
// its Backend is.
type Pager[T any, P any] struct {
	backend Backend[T, P]
	fields  Fields[T]
	logger  *zap.Logger
}

// Option configures a Pager.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for debug tracing of page reads. The default
// is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates a Pager. fields must hold an entry for every column a request
// may sort by.
func New[T any, P any](backend Backend[T, P], fields Fields[T], opts ...Option) *Pager[T, P] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Pager[T, P]{
		backend: backend,
		fields:  fields,
		logger:  o.logger,
	}
}

// ValidateRequest checks that req can be served by FindAll without touching
// the backend.
func (p *Pager[T, P]) ValidateRequest(req PageRequest) error {
	if err := req.validate(); err != nil {
		return err
	}

	for _, orderBy := range req.Sort() {
		field, ok := p.fields[orderBy.Column]
		if !ok || !field.valid() {
			return fmt.Errorf("%w: '%s'", ErrUnknownSortField, orderBy.Column)
		}
	}

	return nil
}

// FindAll returns the page of rows matching all filters that follows the
// position encoded in req's continuation token, or the first page when the
// token is empty.
//
// The backend is asked for one row more than req.Size() to detect whether a
// next page exists. On the first page the backend is also asked for the total
// row count, which becomes the Slice size.
//
// Usage errors (ErrMissingSort, ErrSortChanged, ErrMalformedToken,
// ErrInvalidBoundaryValue and friends) are returned before any backend call.
// Backend errors are returned unchanged.
func (p *Pager[T, P]) FindAll(ctx context.Context, req PageRequest, filters ...P) (*Slice[T], error) {
	if err := p.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	orderings := req.Sort()
	fingerprint := orderings.Fingerprint()

	boundary, err := p.resolveBoundary(req.ContinuationToken(), orderings, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	where := slices.Clone(filters)
	keyset, ok, err := BuildKeysetPredicate[P](p.backend, orderings, boundary)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}
	if ok {
		where = append(where, keyset)
	}

	if ce := p.logger.Check(zap.DebugLevel, "fetching keyset page"); ce != nil {
		ce.Write(
			zap.String("sort", orderings.ToSQL()),
			zap.Int("size", req.Size()),
			zap.Bool("first_page", req.IsFirstPage()),
			zap.Stringer("boundary", keysetDNF(orderings, boundary)),
		)
	}

	resultSet, err := p.backend.Find(ctx, Query[P]{
		Where: where,
		Sort:  orderings,
		Limit: req.Size() + 1,
	})
	if err != nil {
		return nil, err
	}

	var token string
	if !isLastPage(req.Size(), resultSet) {
		resultSet = trimOvershoot(req.Size(), resultSet)

		token, err = p.nextPageToken(lo.LastOrEmpty(resultSet), orderings, fingerprint)
		if err != nil {
			return nil, fmt.Errorf("cannot build continuation token: %w", err)
		}
	}

	size := req.Size()
	if req.IsFirstPage() {
		total, err := p.backend.Count(ctx, filters)
		if err != nil {
			return nil, err
		}
		size = int(total)
	}

	p.logger.Debug("fetched keyset page",
		zap.Int("rows", len(resultSet)),
		zap.Bool("has_next", token != ""),
		zap.Int("size", size),
	)

	return NewSlice(resultSet, size, token), nil
}

// resolveBoundary turns a continuation token into the native values of the
// last row of the previous page, in orderings order. An empty token yields no
// boundary.
func (p *Pager[T, P]) resolveBoundary(token string, orderings Orderings, fingerprint string) ([]any, error) {
	if token == "" {
		return nil, nil
	}

	payload, err := DecodeToken(token)
	if err != nil {
		return nil, err
	}

	if payload.SortFingerprint != fingerprint {
		return nil, ErrSortChanged
	}

	if len(payload.LastValues) != len(orderings) {
		return nil, fmt.Errorf("%w: %d values for %d sort columns", ErrMalformedToken, len(payload.LastValues), len(orderings))
	}

	boundary := make([]any, 0, len(orderings))
	for _, orderBy := range orderings {
		raw, ok := payload.Lookup(orderBy.Column)
		if !ok {
			return nil, fmt.Errorf("%w: no value for sort column '%s'", ErrMalformedToken, orderBy.Column)
		}

		value, err := p.fields[orderBy.Column].Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", orderBy.Column, err)
		}

		boundary = append(boundary, value)
	}

	return boundary, nil
}

// nextPageToken mints the token pointing right after last.
func (p *Pager[T, P]) nextPageToken(last T, orderings Orderings, fingerprint string) (string, error) {
	lastValues := make([]FieldValue, 0, len(orderings))
	for _, orderBy := range orderings {
		value, err := p.fields[orderBy.Column].Format(last)
		if err != nil {
			return "", fmt.Errorf("column '%s': %w", orderBy.Column, err)
		}

		lastValues = append(lastValues, FieldValue{Field: orderBy.Column, Value: value})
	}

	return EncodeToken(fingerprint, lastValues)
}

// isLastPage reports whether resultSet, fetched with one row of overshoot, is
// the last page of the dataset.
func isLastPage[T any](size int, resultSet []T) bool {
	return len(resultSet) <= size
}

// trimOvershoot drops the probe row. Suppose size = 2 and resultSet = [a, b, c]:
// the client gets [a, b] and c only proves that a next page exists.
func trimOvershoot[T any](size int, resultSet []T) []T {
	if len(resultSet) > size {
		return resultSet[:size]
	}

	return resultSet
}
