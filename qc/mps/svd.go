package mps

import "math"

// svdResult is a thin-SVD of an m x n complex matrix (m >= n), A = U * diag(S) * V^H,
// with U m x n, S length n sorted descending, V n x n.
type svdResult struct {
	U []vec // n columns, each length m
	S []float64
	V []vec // n columns, each length n
}

type vec []complex128

// jacobiSVD computes a thin SVD via one-sided complex Jacobi rotations:
// columns of a working copy of A are pairwise rotated until mutually
// orthogonal, at which point their norms are the singular values and the
// normalized columns are U; the accumulated rotations are V. The textbook
// one-sided Jacobi algorithm is adequate for the small (at most a few
// hundred rows) matrices the truncation step produces.
func jacobiSVD(a [][]complex128, maxSweeps int) svdResult {
	if maxSweeps <= 0 {
		maxSweeps = 30
	}
	m := len(a)
	n := 0
	if m > 0 {
		n = len(a[0])
	}
	cols := make([]vec, n)
	for j := 0; j < n; j++ {
		cols[j] = make(vec, m)
		for i := 0; i < m; i++ {
			cols[j][i] = a[i][j]
		}
	}
	v := make([]vec, n)
	for j := 0; j < n; j++ {
		v[j] = make(vec, n)
		v[j][j] = 1
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		offDiag := 0.0
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				alpha, beta, gamma := colStats(cols[p], cols[q])
				mag := cmplxAbs(gamma)
				offDiag += mag * mag
				if mag < 1e-15 {
					continue
				}
				c, s, phase := jacobiAngle(alpha, beta, gamma)
				applyRotation(cols[p], cols[q], c, s, phase)
				applyRotation(v[p], v[q], c, s, phase)
			}
		}
		if offDiag < 1e-24 {
			break
		}
	}

	sVals := make([]float64, n)
	u := make([]vec, n)
	for j := 0; j < n; j++ {
		norm := 0.0
		for _, x := range cols[j] {
			norm += real(x)*real(x) + imag(x)*imag(x)
		}
		norm = math.Sqrt(norm)
		sVals[j] = norm
		u[j] = make(vec, m)
		if norm > 1e-300 {
			inv := complex(1/norm, 0)
			for i := range cols[j] {
				u[j][i] = cols[j][i] * inv
			}
		}
	}

	order := argsortDesc(sVals)
	res := svdResult{U: make([]vec, n), S: make([]float64, n), V: make([]vec, n)}
	for rank, idx := range order {
		res.U[rank] = u[idx]
		res.S[rank] = sVals[idx]
		res.V[rank] = v[idx]
	}
	return res
}

func colStats(a, b vec) (alpha, beta float64, gamma complex128) {
	for i := range a {
		alpha += real(a[i])*real(a[i]) + imag(a[i])*imag(a[i])
		beta += real(b[i])*real(b[i]) + imag(b[i])*imag(b[i])
		gamma += cmplxConj(a[i]) * b[i]
	}
	return
}

func jacobiAngle(alpha, beta float64, gamma complex128) (c, s float64, phase complex128) {
	magGamma := cmplxAbs(gamma)
	if magGamma < 1e-300 {
		return 1, 0, 1
	}
	phase = gamma / complex(magGamma, 0) // unit phase such that gamma = magGamma * phase
	zeta := (beta - alpha) / (2 * magGamma)
	t := 1.0
	if zeta != 0 {
		sign := 1.0
		if zeta < 0 {
			sign = -1.0
		}
		t = sign / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
	}
	c = 1 / math.Sqrt(1+t*t)
	s = c * t
	return
}

// applyRotation rotates the column pair (a,b) by the unitary
// [[c, -s*conj(phase)], [s*phase, c]] so that a^H b -> 0 for the (alpha,
// beta, gamma) that produced (c,s,phase).
func applyRotation(a, b vec, c, s float64, phase complex128) {
	cc := complex(c, 0)
	sc := complex(s, 0)
	for i := range a {
		ai, bi := a[i], b[i]
		a[i] = cc*ai - sc*cmplxConj(phase)*bi
		b[i] = sc*phase*ai + cc*bi
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func cmplxConj(c complex128) complex128 { return complex(real(c), -imag(c)) }

func argsortDesc(s []float64) []int {
	idx := make([]int, len(s))
	for i := range idx {
		idx[i] = i
	}
	// simple insertion sort descending; n is always small (<= a few hundred)
	for i := 1; i < len(idx); i++ {
		j := i
		for j > 0 && s[idx[j]] > s[idx[j-1]] {
			idx[j], idx[j-1] = idx[j-1], idx[j]
			j--
		}
	}
	return idx
}
