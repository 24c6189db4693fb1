package vectorindex

import "math"

// Epsilon stabilises the cosine denominator for zero-norm vectors.
const Epsilon = 1e-8

// Norm returns the Euclidean norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of a and b, which must have equal length.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// CosineSimilarity computes (a·b) / (|a||b| + Epsilon).
func CosineSimilarity(a, b []float32) float64 {
	return Dot(a, b) / (Norm(a)*Norm(b) + Epsilon)
}
