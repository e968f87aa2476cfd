// Package http exposes the dashboard service over a chi router.
//
// Routes:
//
//	GET /api/dashboard        aggregate dashboard payload
//	GET /api/heatmap          country/month revenue heatmap
//	GET /api/cohorts          cohort retention matrix
//	GET /api/rfm              per-customer RFM records
//	GET /api/segmentation     clustered customer base
//	GET /api/export/{report}  CSV download of a derived result
//	GET /healthz              health status
//	GET /metrics              Prometheus exposition
//
// All error responses are RFC 7807 problem documents.
package http
