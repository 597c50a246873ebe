// Package gf256 implements arithmetic in GF(2^8) using exp/log tables built
// from the primitive polynomial x^8 + x^4 + x^3 + x^2 + 1 (0x11D) with
// generator 2, the field used by byte-oriented Reed-Solomon codes.
package gf256

import "errors"

const (
	// Primitive polynomial: x^8 + x^4 + x^3 + x^2 + 1
	primitivePoly = 0x11D

	// Order is the number of nonzero field elements.
	Order = 255

	// Generator of the multiplicative group.
	Generator = 2
)

// ErrDivisionByZero is returned when dividing by or inverting the zero element.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// exp holds two periods so that exp[log[a]+log[b]] needs no reduction
var (
	exp [2 * Order]byte
	log [256]byte
)

func init() {
	x := 1
	for i := 0; i < Order; i++ {
		exp[i] = byte(x)
		log[x] = byte(i)

		x <<= 1
		if x&0x100 != 0 {
			x ^= primitivePoly
		}
	}
	for i := Order; i < len(exp); i++ {
		exp[i] = exp[i-Order]
	}
}

// Add returns a + b. Addition and subtraction are both XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul performs multiplication using the log/exp tables.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return exp[int(log[a])+int(log[b])]
}

// Inverse returns the multiplicative inverse of a.
func Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	return exp[Order-int(log[a])], nil
}

// Div returns a / b.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	inv, err := Inverse(b)
	if err != nil {
		return 0, err
	}
	return Mul(a, inv), nil
}

// Pow raises base to e. A negative exponent of zero is a division by zero.
func Pow(base byte, e int) (byte, error) {
	if e == 0 {
		return 1, nil
	}
	if base == 0 {
		if e < 0 {
			return 0, ErrDivisionByZero
		}
		return 0, nil
	}
	r := (int(log[base]) * e) % Order
	if r < 0 {
		r += Order
	}
	return exp[r], nil
}

// Exp returns Generator^i.
func Exp(i int) byte {
	i %= Order
	if i < 0 {
		i += Order
	}
	return exp[i]
}

// Log returns the discrete logarithm of a. a must be nonzero; Log(0) is
// undefined and returns 0.
func Log(a byte) int {
	return int(log[a])
}
