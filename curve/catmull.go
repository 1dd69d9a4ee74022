package curve

// CatmullCoefficients returns the cubic coefficients of a uniform Catmull-Rom
// span from p1 to p2, with p0 and p3 as the outer neighbors.
//
// The span evaluates as ((c0*t + c1)*t + c2)*t + c3 for t in [0, 1].
func CatmullCoefficients(p0, p1, p2, p3 float64) [4]float64 {
	return [4]float64{
		(-p0 + 3*p1 - 3*p2 + p3) * 0.5,
		(2*p0 - 5*p1 + 4*p2 - p3) * 0.5,
		(-p0 + p2) * 0.5,
		p1,
	}
}

// EvalCatmull evaluates coefficients produced by CatmullCoefficients at t.
func EvalCatmull(c [4]float64, t float64) float64 {
	return ((c[0]*t+c[1])*t+c[2])*t + c[3]
}
