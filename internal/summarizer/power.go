package summarizer

import (
	"gonum.org/v1/gonum/mat"
)

const maxPowerIterations = 1000

// powerMethod iterates p = Mᵀp from the uniform vector until successive
// vectors differ by at most epsilon (Euclidean norm).
func powerMethod(m *mat.Dense, epsilon float64) []float64 {
	n, _ := m.Dims()

	p := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		p.SetVec(i, 1/float64(n))
	}
	next := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)

	for iter := 0; iter < maxPowerIterations; iter++ {
		next.MulVec(m.T(), p)
		diff.SubVec(next, p)
		p.CopyVec(next)
		if mat.Norm(diff, 2) <= epsilon {
			break
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = p.AtVec(i)
	}
	return scores
}
