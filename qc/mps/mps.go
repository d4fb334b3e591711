// Package mps implements the Matrix-Product-State alternative to the dense
// state.Buffer: an ordered chain of n rank-3 tensors, each with a
// left-bond dimension, a fixed physical dimension of 2, and a right-bond
// dimension, with the leftmost left-bond and rightmost right-bond pinned
// to 1. Single-qubit gates apply as a local tensor contraction;
// two-qubit gates on adjacent sites merge the pair, apply the gate, and
// split the result back apart via SVD with truncation to the configured
// bond-dimension cap.
package mps

import (
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/state"
)

// Config bounds the chain's entanglement capacity.
type Config struct {
	MaxBondDim          int
	TruncationThreshold float64
}

var (
	// DefaultConfig balances accuracy and memory for general use.
	DefaultConfig = Config{MaxBondDim: 64, TruncationThreshold: 1e-8}
	// HighAccuracyConfig trades memory for fidelity.
	HighAccuracyConfig = Config{MaxBondDim: 256, TruncationThreshold: 1e-12}
	// LowMemoryConfig trades fidelity for a small footprint.
	LowMemoryConfig = Config{MaxBondDim: 16, TruncationThreshold: 1e-6}
)

// tensor is one site: Data[left][phys][right].
type tensor struct {
	left, right int
	data        [][2][]complex128 // data[l][p] is a vector of length right
}

func newTensor(left, right int) tensor {
	d := make([][2][]complex128, left)
	for l := 0; l < left; l++ {
		d[l][0] = make([]complex128, right)
		d[l][1] = make([]complex128, right)
	}
	return tensor{left: left, right: right, data: d}
}

func (t tensor) at(l, p, r int) complex128 { return t.data[l][p][r] }
func (t *tensor) set(l, p, r int, v complex128) { t.data[l][p][r] = v }

// Chain is the MPS state for n qubits.
type Chain struct {
	qubits  int
	cfg     Config
	tensors []tensor
}

// Zero constructs the all-|0> product state: every tensor is a 1x2x1
// singleton with amplitude 1 at physical index 0.
func Zero(n int, cfg Config) *Chain {
	tensors := make([]tensor, n)
	for i := 0; i < n; i++ {
		t := newTensor(1, 1)
		t.set(0, 0, 0, 1)
		tensors[i] = t
	}
	return &Chain{qubits: n, cfg: cfg, tensors: tensors}
}

// Qubits returns the qubit count.
func (c *Chain) Qubits() int { return c.qubits }

// ApplySingle applies a 2x2 unitary m to qubit q in place: a local
// contraction over the tensor's physical index, no SVD required.
func (c *Chain) ApplySingle(q int, m [2][2]complex128) {
	t := c.tensors[q]
	out := newTensor(t.left, t.right)
	for l := 0; l < t.left; l++ {
		for r := 0; r < t.right; r++ {
			for pOut := 0; pOut < 2; pOut++ {
				var sum complex128
				for pIn := 0; pIn < 2; pIn++ {
					sum += m[pOut][pIn] * t.at(l, pIn, r)
				}
				out.set(l, pOut, r, sum)
			}
		}
	}
	c.tensors[q] = out
}

// ApplyAdjacentTwoQubit applies a 4x4 unitary (indexed [out_a*2+out_b][in_a*2+in_b])
// to qubits q, q+1, merging, transforming, and re-splitting via truncated
// SVD. Fails with MpsBondDimensionExceeded if the true Schmidt rank after
// the gate would need more than MaxBondDim dimensions to represent within
// TruncationThreshold.
func (c *Chain) ApplyAdjacentTwoQubit(q int, m [4][4]complex128) error {
	if q < 0 || q+1 >= c.qubits {
		return errs.Backend(errs.CodeMpsTruncationError, "mps: adjacent gate target out of range")
	}
	left := c.tensors[q]
	right := c.tensors[q+1]
	if left.right != right.left {
		return errs.Backend(errs.CodeMpsTruncationError, "mps: bond dimension mismatch between adjacent tensors")
	}
	mid := left.right

	// merged[l][pa][pb][r] = sum_m left[l][pa][m] * right[m][pb][r]
	type key struct{ l, pa, pb, r int }
	merged := make(map[key]complex128, left.left*4*right.right)
	for l := 0; l < left.left; l++ {
		for pa := 0; pa < 2; pa++ {
			for m2 := 0; m2 < mid; m2++ {
				lv := left.at(l, pa, m2)
				if lv == 0 {
					continue
				}
				for pb := 0; pb < 2; pb++ {
					for r := 0; r < right.right; r++ {
						rv := right.at(m2, pb, r)
						if rv == 0 {
							continue
						}
						merged[key{l, pa, pb, r}] += lv * rv
					}
				}
			}
		}
	}

	// apply the two-qubit gate: theta'[l][oa][ob][r] = sum_{ia,ib} m[oa*2+ob][ia*2+ib] * merged[l][ia][ib][r]
	type key2 struct{ l, oa, ob, r int }
	applied := make(map[key2]complex128, len(merged))
	for l := 0; l < left.left; l++ {
		for r := 0; r < right.right; r++ {
			var in [2][2]complex128
			for ia := 0; ia < 2; ia++ {
				for ib := 0; ib < 2; ib++ {
					in[ia][ib] = merged[key{l, ia, ib, r}]
				}
			}
			for oa := 0; oa < 2; oa++ {
				for ob := 0; ob < 2; ob++ {
					var sum complex128
					for ia := 0; ia < 2; ia++ {
						for ib := 0; ib < 2; ib++ {
							sum += m[oa*2+ob][ia*2+ib] * in[ia][ib]
						}
					}
					if sum != 0 {
						applied[key2{l, oa, ob, r}] = sum
					}
				}
			}
		}
	}

	// reshape into a (left.left*2) x (2*right.right) matrix for SVD:
	// row index = l*2+oa, col index = ob*right.right+r
	rows := left.left * 2
	cols := 2 * right.right
	mat := make([][]complex128, rows)
	for i := range mat {
		mat[i] = make([]complex128, cols)
	}
	for l := 0; l < left.left; l++ {
		for oa := 0; oa < 2; oa++ {
			row := l*2 + oa
			for ob := 0; ob < 2; ob++ {
				for r := 0; r < right.right; r++ {
					col := ob*right.right + r
					mat[row][col] = applied[key2{l, oa, ob, r}]
				}
			}
		}
	}

	svd := jacobiSVD(mat, 40)

	keep := 0
	for _, s := range svd.S {
		if s > c.cfg.TruncationThreshold {
			keep++
		}
	}
	if keep == 0 {
		keep = 1
	}
	if keep > c.cfg.MaxBondDim {
		if !truncationIsTrivial(svd.S, c.cfg.MaxBondDim, c.cfg.TruncationThreshold) {
			return errs.Backend(errs.CodeMpsBondDimensionExceeded, "mps: required bond dimension exceeds configured cap")
		}
		keep = c.cfg.MaxBondDim
	}

	newLeft := newTensor(left.left, keep)
	newRight := newTensor(keep, right.right)
	for l := 0; l < left.left; l++ {
		for oa := 0; oa < 2; oa++ {
			row := l*2 + oa
			for k := 0; k < keep; k++ {
				newLeft.set(l, oa, k, svd.U[k][row])
			}
		}
	}
	for k := 0; k < keep; k++ {
		sv := complex(svd.S[k], 0)
		for ob := 0; ob < 2; ob++ {
			for r := 0; r < right.right; r++ {
				col := ob*right.right + r
				newRight.set(k, ob, r, sv*cmplxConj(svd.V[k][col]))
			}
		}
	}

	c.tensors[q] = newLeft
	c.tensors[q+1] = newRight
	return nil
}

// truncationIsTrivial reports whether the singular values beyond maxBond
// all fall below the threshold anyway, i.e. the cap wasn't actually
// binding in a way that discards non-negligible weight.
func truncationIsTrivial(s []float64, maxBond int, threshold float64) bool {
	for i := maxBond; i < len(s); i++ {
		if s[i] > threshold {
			return false
		}
	}
	return true
}

// ToDense contracts the chain left-to-right into a dense amplitude array.
func (c *Chain) ToDense() *state.Buffer {
	n := c.qubits
	amps := make([]complex128, 1<<uint(n))
	var walk func(site, bondIn int, amp complex128, basis int)
	walk = func(site, bondIn int, amp complex128, basis int) {
		if amp == 0 {
			return
		}
		if site == n {
			amps[basis] += amp
			return
		}
		t := c.tensors[site]
		for p := 0; p < 2; p++ {
			for r := 0; r < t.right; r++ {
				v := t.at(bondIn, p, r)
				if v == 0 {
					continue
				}
				walk(site+1, r, amp*v, (basis<<1)|p)
			}
		}
	}
	walk(0, 0, 1, 0)
	return state.FromAmplitudes(amps)
}
