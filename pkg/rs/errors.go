// Package rs implements a systematic Reed-Solomon codec over GF(2^8).
//
// A codeword is the message followed by nsym parity bytes and can have up to
// nsym/2 corrupted bytes restored. Decoding follows the classic pipeline:
// syndromes, key equation via the extended Euclidean algorithm, Chien search
// for the error positions and the Forney algorithm for the error values.
package rs

import (
	"errors"
	"fmt"

	"github.com/Davincible/rscodec/pkg/gf256"
)

// MaxCodewordLength is the longest codeword GF(2^8) can address.
const MaxCodewordLength = gf256.Order

var (
	// ErrInvalidParameter reports an nsym or length outside the codec's range.
	ErrInvalidParameter = errors.New("rs: invalid parameter")
	// ErrUncorrectable reports more errors than the parity can correct.
	ErrUncorrectable = errors.New("rs: too many errors to correct")
	// ErrDivisionByZero signals an internal invariant violation in the field.
	ErrDivisionByZero = gf256.ErrDivisionByZero
)

func validateParams(dataLen, nsym int) error {
	if nsym < 1 || nsym >= MaxCodewordLength {
		return fmt.Errorf("%w: nsym must be between 1 and %d, got %d", ErrInvalidParameter, MaxCodewordLength-1, nsym)
	}
	if dataLen+nsym > MaxCodewordLength {
		return fmt.Errorf("%w: codeword length %d exceeds %d", ErrInvalidParameter, dataLen+nsym, MaxCodewordLength)
	}
	return nil
}

// Capacity returns how many byte errors nsym parity symbols can correct.
func Capacity(nsym int) int {
	return nsym / 2
}
