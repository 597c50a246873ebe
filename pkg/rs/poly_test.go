package rs

import (
	"testing"

	"github.com/Davincible/rscodec/pkg/gf256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyEvaluate(t *testing.T) {
	// x^2 + 3x + 5
	p := Poly{1, 3, 5}

	assert.Equal(t, byte(5), p.Evaluate(0))
	assert.Equal(t, byte(1^3^5), p.Evaluate(1))

	x := byte(0x53)
	want := gf256.Mul(x, x) ^ gf256.Mul(3, x) ^ 5
	assert.Equal(t, want, p.Evaluate(x))
}

func TestPolyEvaluateDerivative(t *testing.T) {
	tests := []struct {
		name string
		p    Poly
		x    byte
		want byte
	}{
		// d/dx (a x^3 + b x^2 + c x + d) = a x^2 + c in characteristic 2
		{"cubic", Poly{7, 9, 11, 13}, 2, gf256.Mul(7, 4) ^ 11},
		{"linear", Poly{0x42, 1}, 0x99, 0x42},
		{"constant", Poly{0x42}, 0x99, 0},
		{"even terms vanish", Poly{5, 0, 6, 0, 7}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.EvaluateDerivative(tt.x))
		})
	}
}

func TestPolyArithmetic(t *testing.T) {
	p := Poly{1, 2, 3}
	q := Poly{4, 5}

	assert.Equal(t, Poly{1, 2 ^ 4, 3 ^ 5}, p.Add(q))
	assert.True(t, p.Add(p).IsZero())
	assert.Equal(t, 2, p.Degree())
	assert.Equal(t, 0, Poly{0, 0, 7}.Degree())
	assert.Equal(t, byte(1), p.Coefficient(2))
	assert.Equal(t, byte(0), p.Coefficient(5))
	assert.Equal(t, Poly{3, 0, 0}, Monomial(2, 3))
	assert.Equal(t, Poly{2, 4, 6, 0}, p.MulMonomial(1, 2))

	prod := p.Mul(q)
	assert.Equal(t, 3, prod.Degree())
	for _, x := range []byte{1, 2, 0x1D, 0xFE} {
		assert.Equal(t, gf256.Mul(p.Evaluate(x), q.Evaluate(x)), prod.Evaluate(x))
	}
}

func TestPolyDivMod(t *testing.T) {
	a := Poly{0x12, 0x34, 0x56, 0x78, 0x9A}
	b := Poly{3, 0, 7}

	quot, rem, err := a.DivMod(b)
	require.NoError(t, err)
	assert.Less(t, rem.Degree(), b.Degree())
	assert.Equal(t, a, quot.Mul(b).Add(rem))

	_, _, err = a.DivMod(Poly{0})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}
