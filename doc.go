// Package keysetpager provides keyset (cursor) pagination over sorted,
// filtered result sets.
//
// Overview
//
// A page is requested with a PageRequest holding a size, a multi-column sort
// and, for every page but the first, the continuation token returned by the
// previous page. The token is opaque and stateless: it carries a fingerprint
// of the sort and the sort column values of the last row served. The next page
// is selected with a lexicographic boundary predicate
//
//	(c1 > v1) OR (c1 = v1 AND c2 > v2) OR ...
//
// ("<" for descending columns), so rows inserted or deleted between calls
// never cause skipped or repeated rows as long as the last sort column is
// unique.
//
// Key concepts
//   - Pager: the engine. It validates the request, resolves the token, asks
//     the Backend for size+1 rows to detect a next page, mints the next token
//     and, on the first page, counts all matching rows.
//   - Backend: the store capability. GORMBackend ships in this package; the
//     backend/sqlbackend, backend/mongobackend and backend/memory packages
//     cover database/sql, MongoDB and in-memory slices.
//   - Fields: typed accessors reading sort column values off rows and
//     converting them to and from token strings.
//   - Slice: the immutable page result.
//
// Legacy LIMIT/OFFSET paging is available through Pager.FindPage and
// PseudoCursor.
package keysetpager
