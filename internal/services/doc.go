// Package services wires the dataset loader and the analytics routines
// into the units of work the HTTP layer calls. The DashboardService owns
// dataset loading, fans the independent metric routines out in parallel,
// and converts engine results into the wire shapes under pkg/contracts.
package services
