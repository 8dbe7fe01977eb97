package decay

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Gauss-Legendre nodes per panel.
const panelOrder = 8

// integrate computes the integral of f over [a, b] by bisecting until the two
// halves of every panel agree with the panel itself within tolerance.
func (m Model) integrate(f func(float64) float64, a, b float64) float64 {
	if !(b > a) {
		return 0
	}
	return m.refine(f, a, b, panel(f, a, b), m.MaxDepth)
}

func (m Model) refine(f func(float64) float64, a, b, whole float64, depth int) float64 {
	mid := 0.5 * (a + b)
	left, right := panel(f, a, mid), panel(f, mid, b)
	sum := left + right

	if depth <= 0 || math.Abs(sum-whole) <= math.Max(m.AbsTol, m.RelTol*math.Abs(sum)) {
		return sum
	}
	return m.refine(f, a, mid, left, depth-1) + m.refine(f, mid, b, right, depth-1)
}

func panel(f func(float64) float64, a, b float64) float64 {
	return quad.Fixed(f, a, b, panelOrder, quad.Legendre{}, 0)
}
