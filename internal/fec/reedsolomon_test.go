package fec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestEncoder(t *testing.T, nroots uint) *Encoder {
	t.Helper()
	e, err := NewEncoder(8, 0x11D, 1, 1, nroots)
	require.NoError(t, err)
	return e
}

func TestNewEncoderRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name                              string
		symsize, gfpoly, fcr, prim, roots uint
	}{
		{name: "symbol too wide", symsize: 9, gfpoly: 0x11D, fcr: 1, prim: 1, roots: 16},
		{name: "fcr out of field", symsize: 8, gfpoly: 0x11D, fcr: 256, prim: 1, roots: 16},
		{name: "prim zero", symsize: 8, gfpoly: 0x11D, fcr: 1, prim: 0, roots: 16},
		{name: "too many roots", symsize: 8, gfpoly: 0x11D, fcr: 1, prim: 1, roots: 256},
		{name: "non-primitive polynomial", symsize: 8, gfpoly: 0x100, fcr: 1, prim: 1, roots: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncoder(tt.symsize, tt.gfpoly, tt.fcr, tt.prim, tt.roots)
			assert.Error(t, err)
		})
	}
}

func TestEncodeZeroData(t *testing.T) {
	e := newTestEncoder(t, 16)
	parity := e.Encode(make([]byte, 239))
	assert.Equal(t, make([]byte, 16), parity)
}

func TestEncodeDeterministic(t *testing.T) {
	e := newTestEncoder(t, 16)
	data := []byte("The quick brown fox jumps over the lazy dog")
	assert.Equal(t, e.Encode(data), e.Encode(data))
	assert.Len(t, e.Encode(data), 16)
	assert.NotEqual(t, make([]byte, 16), e.Encode(data))
}

func TestEncodeShortenedPrefix(t *testing.T) {
	// A shortened codeword equals the full-length codeword with leading
	// zero data symbols, so zero-prefixing the data must not change the
	// parity.
	e := newTestEncoder(t, 32)
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x7E, 0x7E}
	padded := append(make([]byte, 100), data...)
	assert.Equal(t, e.Encode(data), e.Encode(padded))
}

func TestEncodeLinearity(t *testing.T) {
	// Reed-Solomon codes are linear: parity(a xor b) == parity(a) xor
	// parity(b) for equal-length inputs.
	e := newTestEncoder(t, 16)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 239).Draw(t, "n")
		a := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "a")
		b := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "b")

		sum := make([]byte, n)
		for i := range sum {
			sum[i] = a[i] ^ b[i]
		}

		pa, pb, ps := e.Encode(a), e.Encode(b), e.Encode(sum)
		for i := range ps {
			assert.Equal(t, ps[i], pa[i]^pb[i])
		}
	})
}

func TestEncoderNumRoots(t *testing.T) {
	assert.Equal(t, 16, newTestEncoder(t, 16).NumRoots())
	assert.Equal(t, 32, newTestEncoder(t, 32).NumRoots())
}
