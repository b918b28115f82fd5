package keysetpager

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

var _encoder = base64.RawURLEncoding

const (
	_fingerprintSeparator = "_"
	_pairSeparator        = ";"
	_keyValueSeparator    = "="
)

// FieldValue is a sort column paired with the string form of its value in the
// last row of a page.
type FieldValue struct {
	Field string
	Value string
}

// ContinuationPayload is the decoded form of a continuation token.
type ContinuationPayload struct {
	SortFingerprint string
	LastValues      []FieldValue
}

// Lookup returns the value stored for field.
func (p ContinuationPayload) Lookup(field string) (string, bool) {
	for _, fv := range p.LastValues {
		if fv.Field == field {
			return fv.Value, true
		}
	}

	return "", false
}

// EncodeToken builds an opaque, URL-safe continuation token:
//
//	base64url(fingerprint "_" field1 "=" value1 ";" field2 "=" value2 ...)
//
// Fields and values are query-escaped, so separators inside them survive the
// round trip. The fingerprint itself must not contain "_".
func EncodeToken(fingerprint string, lastValues []FieldValue) (string, error) {
	if fingerprint == "" || strings.Contains(fingerprint, _fingerprintSeparator) {
		return "", fmt.Errorf("cannot encode token: invalid fingerprint '%s'", fingerprint)
	}

	pairs := make([]string, 0, len(lastValues))
	for _, fv := range lastValues {
		if fv.Field == "" {
			return "", fmt.Errorf("cannot encode token: empty field name")
		}

		pairs = append(pairs, url.QueryEscape(fv.Field)+_keyValueSeparator+url.QueryEscape(fv.Value))
	}

	raw := fingerprint + _fingerprintSeparator + strings.Join(pairs, _pairSeparator)

	return _encoder.EncodeToString([]byte(raw)), nil
}

// DecodeToken parses a token produced by EncodeToken. It checks structure only;
// matching the payload against a sort is up to the caller.
func DecodeToken(token string) (ContinuationPayload, error) {
	raw, err := _encoder.DecodeString(token)
	if err != nil {
		return ContinuationPayload{}, fmt.Errorf("%w: cannot decode base64: %w", ErrMalformedToken, err)
	}

	fingerprint, body, ok := strings.Cut(string(raw), _fingerprintSeparator)
	if !ok || fingerprint == "" {
		return ContinuationPayload{}, fmt.Errorf("%w: missing sort fingerprint", ErrMalformedToken)
	}

	payload := ContinuationPayload{SortFingerprint: fingerprint}
	if body == "" {
		return payload, nil
	}

	pairs := strings.Split(body, _pairSeparator)
	payload.LastValues = make([]FieldValue, 0, len(pairs))
	for _, pair := range pairs {
		rawField, rawValue, ok := strings.Cut(pair, _keyValueSeparator)
		if !ok {
			return ContinuationPayload{}, fmt.Errorf("%w: cannot split pair '%s'", ErrMalformedToken, pair)
		}

		field, err := url.QueryUnescape(rawField)
		if err != nil {
			return ContinuationPayload{}, fmt.Errorf("%w: cannot unescape field: %w", ErrMalformedToken, err)
		}
		if field == "" {
			return ContinuationPayload{}, fmt.Errorf("%w: empty field name", ErrMalformedToken)
		}
		if _, dup := payload.Lookup(field); dup {
			return ContinuationPayload{}, fmt.Errorf("%w: duplicate field '%s'", ErrMalformedToken, field)
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return ContinuationPayload{}, fmt.Errorf("%w: cannot unescape value of '%s': %w", ErrMalformedToken, field, err)
		}

		payload.LastValues = append(payload.LastValues, FieldValue{Field: field, Value: value})
	}

	return payload, nil
}
