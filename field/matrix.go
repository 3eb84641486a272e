package field

import (
	"errors"
	"fmt"
)

// ErrNoSolution is returned by Solve when the system is inconsistent.
var ErrNoSolution = errors.New("linear system has no solution")

// Matrix operations over finite fields

// cloneMatrix makes a deep copy of the matrix
func cloneMatrix(A [][]Element) [][]Element {
	B := make([][]Element, len(A))
	for i := range A {
		B[i] = make([]Element, len(A[i]))
		for j := range A[i] {
			B[i][j] = A[i][j].Clone()
		}
	}
	return B
}

// RowReduce computes the reduced row echelon form of A by Gauss-Jordan
// elimination. It returns the reduced matrix and the pivot column of each
// non-zero row, in row order. Any non-zero entry is a valid pivot; the first
// one found in the column is used.
func RowReduce(A [][]Element) ([][]Element, []int) {
	n := len(A) // number of rows
	if n == 0 {
		return nil, nil
	}
	m := len(A[0]) // number of columns

	R := cloneMatrix(A)
	pivots := make([]int, 0, min(n, m))

	rank := 0
	for col := 0; col < m && rank < n; col++ {
		// Find pivot
		pivot := -1
		for i := rank; i < n; i++ {
			if !R[i][col].IsZero() {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			continue // no pivot in this column
		}

		// Swap to current rank position
		if pivot != rank {
			R[rank], R[pivot] = R[pivot], R[rank]
		}

		// Normalize pivot row
		inv := R[rank][col].Inv()
		for j := col; j < m; j++ {
			R[rank][j] = R[rank][j].Mul(inv)
		}

		// Eliminate below and above
		for i := 0; i < n; i++ {
			if i == rank || R[i][col].IsZero() {
				continue
			}
			factor := R[i][col]
			for j := col; j < m; j++ {
				R[i][j] = R[i][j].Sub(factor.Mul(R[rank][j]))
			}
		}

		pivots = append(pivots, col)
		rank++
	}

	return R, pivots
}

// Rank returns the rank of A
func Rank(A [][]Element) int {
	_, pivots := RowReduce(A)
	return len(pivots)
}

// Solve returns a solution z of A·z = b. Singular and underdetermined
// systems are accepted; free variables are set to zero. ErrNoSolution is
// returned when the system is inconsistent.
func Solve(A [][]Element, b []Element, field Field) ([]Element, error) {
	n := len(A)
	if n == 0 {
		return nil, fmt.Errorf("empty system")
	}
	if len(b) != n {
		return nil, fmt.Errorf("right-hand side has %d entries, system has %d rows", len(b), n)
	}
	m := len(A[0])

	// Build the augmented matrix [A | b]
	aug := make([][]Element, n)
	for i := range A {
		if len(A[i]) != m {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(A[i]), m)
		}
		aug[i] = make([]Element, m+1)
		copy(aug[i], A[i])
		aug[i][m] = b[i]
	}

	R, pivots := RowReduce(aug)

	// A pivot in the augmented column means 0 = 1
	if len(pivots) > 0 && pivots[len(pivots)-1] == m {
		return nil, ErrNoSolution
	}

	z := make([]Element, m)
	for j := range z {
		z[j] = field.Zero()
	}
	for row, col := range pivots {
		z[col] = R[row][m]
	}
	return z, nil
}

// NullSpace returns a basis of {z : A·z = 0}. The result is empty when only
// the trivial solution exists. Basis vector i has a one in the i-th free
// column and zeros in the other free columns.
func NullSpace(A [][]Element, field Field) [][]Element {
	if len(A) == 0 {
		return nil
	}
	m := len(A[0])

	R, pivots := RowReduce(A)

	isPivot := make([]bool, m)
	for _, col := range pivots {
		isPivot[col] = true
	}

	var basis [][]Element
	for free := 0; free < m; free++ {
		if isPivot[free] {
			continue
		}
		v := make([]Element, m)
		for j := range v {
			v[j] = field.Zero()
		}
		v[free] = field.One()
		for row, col := range pivots {
			v[col] = Neg(field, R[row][free])
		}
		basis = append(basis, v)
	}
	return basis
}

// MatrixMultiply computes A × B matrix multiplication over the field
// A is m×n, B is n×p, result is m×p
func MatrixMultiply(A, B [][]Element, field Field) [][]Element {
	if len(A) == 0 || len(B) == 0 {
		return nil
	}

	m := len(A)    // rows of A
	n := len(A[0]) // cols of A = rows of B
	p := len(B[0]) // cols of B

	// Verify dimensions match
	if len(B) != n {
		panic(fmt.Sprintf("matrix dimensions mismatch: A is %d×%d, B is %d×%d", m, n, len(B), p))
	}

	C := make([][]Element, m)
	for i := range C {
		C[i] = make([]Element, p)
		for j := 0; j < p; j++ {
			sum := field.Zero()
			for k := 0; k < n; k++ {
				sum = sum.Add(A[i][k].Mul(B[k][j]))
			}
			C[i][j] = sum
		}
	}
	return C
}

// MatrixVector computes A·z
func MatrixVector(A [][]Element, z []Element, field Field) []Element {
	out := make([]Element, len(A))
	for i := range A {
		sum := field.Zero()
		for j := range A[i] {
			sum = sum.Add(A[i][j].Mul(z[j]))
		}
		out[i] = sum
	}
	return out
}
