// Package dataset loads the transactional retail dataset into a canonical
// in-memory table with fixed column semantics.
//
// The loader reads a delimited source encoded as ISO-8859-1 (the raw export
// contains non-UTF-8 bytes), drops rows without a customer ID, parses invoice
// timestamps, removes exact-duplicate rows and computes the derived
// TotalPrice column. The resulting Table is immutable for the remainder of
// its lifetime; every metric routine in internal/analytics consumes it
// read-only.
//
// Loading is fail-fast: a single malformed cell aborts the whole load with a
// *ParseError naming the offending row and column. There is no row-level
// error recovery and no partial result.
package dataset
