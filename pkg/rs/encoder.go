package rs

import (
	"slices"
	"sync"

	"github.com/Davincible/rscodec/pkg/gf256"
)

// generators caches g(x) per nsym; each entry is built once and never mutated.
var generators [MaxCodewordLength]struct {
	once sync.Once
	poly Poly
}

// Generator returns g(x) = (x - a^0)(x - a^1)...(x - a^(nsym-1)).
// The result is a copy and may be modified by the caller.
func Generator(nsym int) (Poly, error) {
	if err := validateParams(0, nsym); err != nil {
		return nil, err
	}
	return slices.Clone(generator(nsym)), nil
}

// generator returns the shared cached polynomial; nsym must already be valid.
func generator(nsym int) Poly {
	g := &generators[nsym]
	g.once.Do(func() {
		p := Poly{1}
		for i := 0; i < nsym; i++ {
			p = p.Mul(Poly{1, gf256.Exp(i)})
		}
		g.poly = p
	})
	return g.poly
}

// Encode returns message followed by nsym parity bytes.
func Encode(message []byte, nsym int) ([]byte, error) {
	if err := validateParams(len(message), nsym); err != nil {
		return nil, err
	}

	gen := generator(nsym)
	codeword := make([]byte, len(message)+nsym)
	copy(codeword, message)

	// Synthetic division by the monic generator; the tail ends up holding
	// the remainder.
	for i := range message {
		factor := codeword[i]
		if factor == 0 {
			continue
		}
		for j := 1; j < len(gen); j++ {
			codeword[i+j] ^= gf256.Mul(gen[j], factor)
		}
	}

	copy(codeword, message)
	return codeword, nil
}
