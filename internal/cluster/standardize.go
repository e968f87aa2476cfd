package cluster

import "math"

// Standardize z-scores every feature independently: each column of the
// returned matrix has zero mean and, where the raw column varies at all,
// unit variance. A constant column has zero standard deviation and is
// mapped to all zeros instead of dividing by it. The input is not modified.
func Standardize(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return nil
	}
	dims := len(points[0])
	n := float64(len(points))

	means := make([]float64, dims)
	for _, p := range points {
		for d, v := range p {
			means[d] += v
		}
	}
	for d := range means {
		means[d] /= n
	}

	stddevs := make([]float64, dims)
	for _, p := range points {
		for d, v := range p {
			diff := v - means[d]
			stddevs[d] += diff * diff
		}
	}
	for d := range stddevs {
		stddevs[d] = math.Sqrt(stddevs[d] / n)
	}

	out := make([][]float64, len(points))
	for i, p := range points {
		row := make([]float64, dims)
		for d, v := range p {
			if stddevs[d] > 0 {
				row[d] = (v - means[d]) / stddevs[d]
			}
		}
		out[i] = row
	}
	return out
}
