package rs

import (
	"fmt"

	"github.com/Davincible/rscodec/pkg/gf256"
)

// ErrorMagnitudes computes the value of each error with the Forney
// algorithm: e = X * Omega(X^-1) / Sigma'(X^-1), X being the error location.
func ErrorMagnitudes(n int, loc *Locator, positions []int) ([]byte, error) {
	magnitudes := make([]byte, len(positions))
	for i, pos := range positions {
		if pos < 0 || pos >= n {
			return nil, fmt.Errorf("%w: position %d outside codeword of length %d", ErrInvalidParameter, pos, n)
		}

		x := gf256.Exp(n - 1 - pos)
		xInv, err := gf256.Inverse(x)
		if err != nil {
			return nil, fmt.Errorf("error location %d: %w", pos, err)
		}

		num := gf256.Mul(x, loc.Omega.Evaluate(xInv))
		den := loc.Sigma.EvaluateDerivative(xInv)
		e, err := gf256.Div(num, den)
		if err != nil {
			return nil, fmt.Errorf("forney denominator at position %d: %w", pos, err)
		}
		magnitudes[i] = e
	}
	return magnitudes, nil
}

// Correct returns a copy of codeword with the errors at positions removed.
func Correct(codeword []byte, nsym int, loc *Locator, positions []int) ([]byte, error) {
	if len(positions) > Capacity(nsym) {
		return nil, fmt.Errorf("%w: %d errors, capacity %d", ErrUncorrectable, len(positions), Capacity(nsym))
	}

	magnitudes, err := ErrorMagnitudes(len(codeword), loc, positions)
	if err != nil {
		return nil, err
	}

	corrected := make([]byte, len(codeword))
	copy(corrected, codeword)
	for i, pos := range positions {
		corrected[pos] ^= magnitudes[i]
	}
	return corrected, nil
}
