package rs

import "github.com/Davincible/rscodec/pkg/gf256"

// Syndromes evaluates the received codeword at the nsym roots of the
// generator. S[i] = c(a^i); every entry is zero for a valid codeword.
// A non-positive nsym yields no syndromes.
func Syndromes(codeword []byte, nsym int) []byte {
	if nsym <= 0 {
		return nil
	}
	c := Poly(codeword)
	synd := make([]byte, nsym)
	for i := range synd {
		synd[i] = c.Evaluate(gf256.Exp(i))
	}
	return synd
}

// HasErrors reports whether any syndrome is nonzero.
func HasErrors(syndromes []byte) bool {
	for _, s := range syndromes {
		if s != 0 {
			return true
		}
	}
	return false
}
