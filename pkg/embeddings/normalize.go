package embeddings

import "math"

// Normalize scales v to unit length in place and returns it.
// Zero vectors are returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}

	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// NormalizeAll normalizes every vector in vs in place and returns vs.
func NormalizeAll(vs [][]float32) [][]float32 {
	for _, v := range vs {
		Normalize(v)
	}
	return vs
}
