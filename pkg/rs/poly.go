package rs

import "github.com/Davincible/rscodec/pkg/gf256"

// Poly is a polynomial over GF(2^8) with the most significant coefficient
// first. A codeword of length n is read as c[0]*x^(n-1) + ... + c[n-1].
type Poly []byte

// Monomial returns coef*x^degree.
func Monomial(degree int, coef byte) Poly {
	if coef == 0 {
		return Poly{0}
	}
	p := make(Poly, degree+1)
	p[0] = coef
	return p
}

// normalize strips leading zero coefficients, keeping at least one term.
func (p Poly) normalize() Poly {
	if len(p) == 0 {
		return Poly{0}
	}
	i := 0
	for i < len(p)-1 && p[i] == 0 {
		i++
	}
	return p[i:]
}

// Degree returns the degree of p. The zero polynomial has degree 0.
func (p Poly) Degree() int {
	return len(p.normalize()) - 1
}

// IsZero reports whether every coefficient is zero.
func (p Poly) IsZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// Coefficient returns the coefficient of x^degree.
func (p Poly) Coefficient(degree int) byte {
	i := len(p) - 1 - degree
	if i < 0 || i >= len(p) {
		return 0
	}
	return p[i]
}

// Evaluate returns p(x) using Horner's rule.
func (p Poly) Evaluate(x byte) byte {
	var y byte
	for _, c := range p {
		y = gf256.Mul(y, x) ^ c
	}
	return y
}

// EvaluateDerivative returns p'(x). In characteristic 2 the even-exponent
// terms vanish and odd ones keep their coefficient.
func (p Poly) EvaluateDerivative(x byte) byte {
	deg := len(p) - 1
	var y byte
	for i := 0; i < deg; i++ {
		y = gf256.Mul(y, x)
		if (deg-i)%2 == 1 {
			y ^= p[i]
		}
	}
	return y
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	if len(p) < len(q) {
		p, q = q, p
	}
	r := make(Poly, len(p))
	copy(r, p)
	off := len(p) - len(q)
	for i, c := range q {
		r[off+i] ^= c
	}
	return r.normalize()
}

// Scale returns s*p.
func (p Poly) Scale(s byte) Poly {
	if s == 0 {
		return Poly{0}
	}
	r := make(Poly, len(p))
	for i, c := range p {
		r[i] = gf256.Mul(c, s)
	}
	return r.normalize()
}

// MulMonomial returns p * coef*x^degree.
func (p Poly) MulMonomial(degree int, coef byte) Poly {
	if coef == 0 {
		return Poly{0}
	}
	r := make(Poly, len(p)+degree)
	for i, c := range p {
		r[i] = gf256.Mul(c, coef)
	}
	return r.normalize()
}

// Mul returns p * q.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{0}
	}
	r := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			r[i+j] ^= gf256.Mul(a, b)
		}
	}
	return r.normalize()
}

// DivMod returns the quotient and remainder of p / q.
func (p Poly) DivMod(q Poly) (Poly, Poly, error) {
	q = q.normalize()
	if q.IsZero() {
		return nil, nil, gf256.ErrDivisionByZero
	}
	lead, err := gf256.Inverse(q[0])
	if err != nil {
		return nil, nil, err
	}

	quot := Poly{0}
	rem := p.normalize()
	for !rem.IsZero() && rem.Degree() >= q.Degree() {
		diff := rem.Degree() - q.Degree()
		scale := gf256.Mul(rem.normalize()[0], lead)
		quot = quot.Add(Monomial(diff, scale))
		rem = rem.Add(q.MulMonomial(diff, scale))
	}
	return quot, rem, nil
}
