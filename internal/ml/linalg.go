package ml

import "math"

// #region vector-helpers
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// sigmoid is the numerically stable logistic function.
func sigmoid(z float64) float64 {
	if z >= 0 {
		ez := math.Exp(-z)
		return 1.0 / (1.0 + ez)
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// #endregion vector-helpers

// #region matrix
// Matrix is a small square dense matrix stored row-major. Each bandit arm
// owns one as its running inverse-covariance.
type Matrix struct {
	N    int       `json:"n"`
	Data []float64 `json:"data"`
}

// Identity returns the n-by-n identity.
func Identity(n int) *Matrix {
	m := &Matrix{N: n, Data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1.0
	}
	return m
}

// MulVec computes m·x.
func (m *Matrix) MulVec(x []float64) []float64 {
	out := make([]float64, m.N)
	for i := 0; i < m.N; i++ {
		row := m.Data[i*m.N : (i+1)*m.N]
		out[i] = dot(row, x)
	}
	return out
}

// RankOneUpdate applies the Sherman-Morrison identity in place: if m holds
// A^-1, afterwards it holds (A + x x^T)^-1. The inverse is never recomputed
// from scratch.
func (m *Matrix) RankOneUpdate(x []float64) {
	u := m.MulVec(x)
	denom := 1.0 + dot(x, u)
	if denom == 0 {
		return
	}
	for i := 0; i < m.N; i++ {
		for j := 0; j < m.N; j++ {
			m.Data[i*m.N+j] -= u[i] * u[j] / denom
		}
	}
}

// #endregion matrix
