package cluster

import (
	"fmt"
	"math"
	"math/rand"
)

// Clusterer assigns each point to one of k clusters. Implementations must
// be deterministic for a fixed configuration and input order.
type Clusterer interface {
	Fit(points [][]float64, k int) ([]int, error)
}

// KMeans is a seeded Lloyd's-algorithm k-means. Initial centroids are drawn
// without replacement from the input using the configured seed, so repeated
// runs over the same points in the same order produce identical labels.
type KMeans struct {
	Seed          int64
	MaxIterations int
}

// DefaultMaxIterations bounds Lloyd iterations when the assignment does not
// converge earlier.
const DefaultMaxIterations = 100

// NewKMeans returns a KMeans with the given seed and the default iteration
// bound.
func NewKMeans(seed int64) *KMeans {
	return &KMeans{Seed: seed, MaxIterations: DefaultMaxIterations}
}

// Fit partitions points into k clusters and returns one label in [0, k) per
// point, in input order.
func (km *KMeans) Fit(points [][]float64, k int) ([]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	if len(points) < k {
		return nil, fmt.Errorf("need at least %d points for %d clusters, got %d", k, k, len(points))
	}

	dims := len(points[0])
	for i, p := range points {
		if len(p) != dims {
			return nil, fmt.Errorf("point %d has %d dimensions, want %d", i, len(p), dims)
		}
	}

	maxIter := km.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	rng := rand.New(rand.NewSource(km.Seed))

	// Initial centroids: k distinct points chosen by the seeded generator.
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		centroids[i] = append([]float64(nil), points[idx]...)
	}

	labels := make([]int, len(points))
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearest(p, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		recompute(points, labels, centroids)
	}

	return labels, nil
}

// nearest returns the index of the centroid closest to p by squared
// euclidean distance. Ties resolve to the lowest index.
func nearest(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centroids {
		if d := squaredDistance(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// recompute replaces each centroid with the mean of its members. An empty
// cluster is reseeded with the point farthest from its current centroid to
// keep all k clusters populated.
func recompute(points [][]float64, labels []int, centroids [][]float64) {
	k := len(centroids)
	dims := len(centroids[0])

	sums := make([][]float64, k)
	counts := make([]int, k)
	for i := range sums {
		sums[i] = make([]float64, dims)
	}
	for i, p := range points {
		c := labels[i]
		counts[c]++
		for d, v := range p {
			sums[c][d] += v
		}
	}

	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			centroids[c] = append([]float64(nil), points[farthest(points, labels, centroids)]...)
			continue
		}
		for d := 0; d < dims; d++ {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

// farthest returns the index of the point with the greatest distance to its
// assigned centroid.
func farthest(points [][]float64, labels []int, centroids [][]float64) int {
	best, bestDist := 0, -1.0
	for i, p := range points {
		if d := squaredDistance(p, centroids[labels[i]]); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// squaredDistance returns the squared euclidean distance between a and b.
func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
