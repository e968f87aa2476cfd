// Package cluster provides partitioning clustering for the customer
// segmentation routine. The algorithm sits behind the Clusterer interface
// so an alternative can be substituted without touching the feature-table
// contract in internal/analytics.
package cluster
