// Package exporter renders derived dashboard results as CSV.
//
// A Report pairs headers with stringified records and can be streamed to
// an http.ResponseWriter or written into an exports directory with a
// UTF-8 BOM for Excel compatibility. The builders in reports.go convert
// the wire types under pkg/contracts/domain into Reports.
package exporter
