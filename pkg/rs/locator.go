package rs

import (
	"fmt"
	"slices"

	"github.com/Davincible/rscodec/pkg/gf256"
)

// Locator is the solution of the key equation S(x)*Sigma(x) = Omega(x) mod x^nsym.
type Locator struct {
	// Sigma is the error locator, normalized so Sigma(0) = 1. Its roots are
	// the inverses of the error locations.
	Sigma Poly
	// Omega is the error evaluator used by the Forney step.
	Omega Poly
}

// syndromePoly returns S(x) = S[0] + S[1]x + ... + S[nsym-1]x^(nsym-1).
func syndromePoly(syndromes []byte) Poly {
	p := make(Poly, len(syndromes))
	for i, s := range syndromes {
		p[len(p)-1-i] = s
	}
	return p.normalize()
}

// SolveKeyEquation runs the extended Euclidean algorithm on x^nsym and S(x)
// until the remainder degree drops below nsym/2.
func SolveKeyEquation(syndromes []byte, nsym int) (*Locator, error) {
	rLast := Monomial(nsym, 1)
	r := syndromePoly(syndromes)
	tLast := Poly{0}
	t := Poly{1}

	for 2*r.Degree() >= nsym {
		q, rem, err := rLast.DivMod(r)
		if err != nil {
			return nil, fmt.Errorf("key equation: %w", err)
		}

		rLast, r = r, rem
		tLast, t = t, q.Mul(t).Add(tLast)
	}

	inv, err := gf256.Inverse(t.Coefficient(0))
	if err != nil {
		return nil, fmt.Errorf("%w: locator has no constant term", ErrUncorrectable)
	}

	return &Locator{
		Sigma: t.Scale(inv),
		Omega: r.Scale(inv),
	}, nil
}

// FindPositions performs a Chien search over every nonzero field element and
// maps each root of sigma to a 0-based index into a codeword of length n.
func FindPositions(sigma Poly, n int) ([]int, error) {
	numErrors := sigma.Degree()
	positions := make([]int, 0, numErrors)

	for i := 1; i <= gf256.Order; i++ {
		root := byte(i)
		if sigma.Evaluate(root) != 0 {
			continue
		}
		// The root is X^-1 for the error location X = a^(n-1-pos).
		x, err := gf256.Inverse(root)
		if err != nil {
			return nil, err
		}
		pos := n - 1 - gf256.Log(x)
		if pos < 0 {
			return nil, fmt.Errorf("%w: error location outside codeword", ErrUncorrectable)
		}
		positions = append(positions, pos)
	}

	if len(positions) != numErrors {
		return nil, fmt.Errorf("%w: locator of degree %d has %d roots", ErrUncorrectable, numErrors, len(positions))
	}

	slices.Sort(positions)
	return positions, nil
}

// Locate derives the error locator from the syndromes of a codeword of
// length n and returns it with the error positions.
func Locate(syndromes []byte, nsym, n int) (*Locator, []int, error) {
	if !HasErrors(syndromes) {
		return &Locator{Sigma: Poly{1}, Omega: Poly{0}}, nil, nil
	}

	loc, err := SolveKeyEquation(syndromes, nsym)
	if err != nil {
		return nil, nil, err
	}

	deg := loc.Sigma.Degree()
	if deg == 0 || deg > Capacity(nsym) {
		return nil, nil, fmt.Errorf("%w: %d errors, capacity %d", ErrUncorrectable, deg, Capacity(nsym))
	}

	positions, err := FindPositions(loc.Sigma, n)
	if err != nil {
		return nil, nil, err
	}
	return loc, positions, nil
}
