package rs

import "fmt"

// Result describes a decoded codeword.
type Result struct {
	Message    []byte
	Codeword   []byte
	Syndromes  []byte
	Positions  []int
	Magnitudes []byte
}

// Corrected reports whether any byte had to be repaired.
func (r *Result) Corrected() bool {
	return len(r.Positions) > 0
}

func validateCodeword(codeword []byte, nsym int) error {
	if len(codeword) < nsym {
		return fmt.Errorf("%w: codeword of length %d cannot carry %d parity symbols", ErrInvalidParameter, len(codeword), nsym)
	}
	return validateParams(len(codeword)-nsym, nsym)
}

// Decode corrects up to nsym/2 byte errors and returns the message.
func Decode(codeword []byte, nsym int) ([]byte, error) {
	res, err := DecodeDetailed(codeword, nsym)
	if err != nil {
		return nil, err
	}
	return res.Message, nil
}

// DecodeDetailed is Decode but also returns what was corrected.
// The input slice is never modified.
func DecodeDetailed(codeword []byte, nsym int) (*Result, error) {
	if err := validateCodeword(codeword, nsym); err != nil {
		return nil, err
	}

	k := len(codeword) - nsym
	res := &Result{
		Syndromes: Syndromes(codeword, nsym),
	}

	if !HasErrors(res.Syndromes) {
		res.Codeword = append([]byte(nil), codeword...)
		res.Message = res.Codeword[:k:k]
		return res, nil
	}

	loc, positions, err := Locate(res.Syndromes, nsym, len(codeword))
	if err != nil {
		return nil, err
	}

	corrected, err := Correct(codeword, nsym, loc, positions)
	if err != nil {
		return nil, err
	}

	// A codeword beyond capacity can still produce a locator whose roots
	// fit; only a clean re-check proves the result is a codeword.
	if HasErrors(Syndromes(corrected, nsym)) {
		return nil, fmt.Errorf("%w: correction did not yield a valid codeword", ErrUncorrectable)
	}

	res.Codeword = corrected
	res.Message = corrected[:k:k]
	res.Positions = positions
	res.Magnitudes = make([]byte, len(positions))
	for i, pos := range positions {
		res.Magnitudes[i] = corrected[pos] ^ codeword[pos]
	}
	return res, nil
}

// Check reports whether codeword is valid, i.e. all its syndromes are zero.
func Check(codeword []byte, nsym int) (bool, error) {
	if err := validateCodeword(codeword, nsym); err != nil {
		return false, err
	}
	return !HasErrors(Syndromes(codeword, nsym)), nil
}
