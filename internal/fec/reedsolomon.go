// Package fec provides the Reed-Solomon parity generator consumed by the
// FX.25 envelope. Only encoding is implemented; the arithmetic follows the
// classic Karn GF(2^m) construction.
package fec

import "fmt"

// Encoder is a Reed-Solomon parity generator over GF(2^symsize) for a code
// with the given first consecutive root, primitive element and number of
// roots. It is immutable after construction and safe for concurrent use.
type Encoder struct {
	mm      uint   // bits per symbol
	nn      int    // symbols per codeword, (1<<mm)-1
	alphaTo []byte // antilog table
	indexOf []byte // log table
	genpoly []byte // generator polynomial, index form
	nroots  int    // parity symbols per codeword
}

// NewEncoder builds the Galois field tables and the generator polynomial.
// symsize is the symbol width in bits (at most 8), gfpoly the field
// generator polynomial, fcr the first consecutive root in index form, prim
// the primitive element used to generate the roots, and nroots the number
// of parity symbols.
func NewEncoder(symsize, gfpoly, fcr, prim, nroots uint) (*Encoder, error) {
	if symsize > 8 {
		return nil, fmt.Errorf("fec: symbol size %d exceeds 8 bits", symsize)
	}
	if fcr >= 1<<symsize {
		return nil, fmt.Errorf("fec: first consecutive root %d out of field", fcr)
	}
	if prim == 0 || prim >= 1<<symsize {
		return nil, fmt.Errorf("fec: primitive element %d out of field", prim)
	}
	if nroots >= 1<<symsize {
		return nil, fmt.Errorf("fec: %d roots exceed the symbol alphabet", nroots)
	}

	e := &Encoder{
		mm:     symsize,
		nn:     (1 << symsize) - 1,
		nroots: int(nroots),
	}

	e.alphaTo = make([]byte, e.nn+1)
	e.indexOf = make([]byte, e.nn+1)

	// Galois field log/antilog tables.
	e.indexOf[0] = byte(e.nn) // log(zero)
	e.alphaTo[e.nn] = 0       // alpha**-inf
	sr := 1
	for i := 0; i < e.nn; i++ {
		e.indexOf[sr] = byte(i)
		e.alphaTo[i] = byte(sr)
		sr <<= 1
		if sr&(1<<symsize) != 0 {
			sr ^= int(gfpoly)
		}
		sr &= e.nn
	}
	if sr != 1 {
		return nil, fmt.Errorf("fec: field generator polynomial %#x is not primitive", gfpoly)
	}

	// Form the code generator polynomial from its roots
	// (x - alpha^fcr)(x - alpha^(fcr+prim)) ... then convert to index form.
	e.genpoly = make([]byte, nroots+1)
	e.genpoly[0] = 1
	for i, root := 0, int(fcr)*int(prim); i < int(nroots); i, root = i+1, root+int(prim) {
		e.genpoly[i+1] = 1
		for j := i; j > 0; j-- {
			if e.genpoly[j] != 0 {
				e.genpoly[j] = e.genpoly[j-1] ^ e.alphaTo[e.modnn(int(e.indexOf[e.genpoly[j]])+root)]
			} else {
				e.genpoly[j] = e.genpoly[j-1]
			}
		}
		e.genpoly[0] = e.alphaTo[e.modnn(int(e.indexOf[e.genpoly[0]])+root)]
	}
	for i := range e.genpoly {
		e.genpoly[i] = e.indexOf[e.genpoly[i]]
	}

	return e, nil
}

// NumRoots returns the number of parity symbols the encoder produces.
func (e *Encoder) NumRoots() int {
	return e.nroots
}

// Encode runs data through the generator-polynomial LFSR and returns the
// nroots parity symbols. data may be shorter than the full codeword data
// length; the missing leading symbols are implicitly zero, which is the
// standard shortened-code convention.
func (e *Encoder) Encode(data []byte) []byte {
	parity := make([]byte, e.nroots)

	for _, d := range data {
		feedback := e.indexOf[d^parity[0]]

		if int(feedback) != e.nn { // non-zero feedback term
			for j := 1; j < e.nroots; j++ {
				parity[j] ^= e.alphaTo[e.modnn(int(feedback)+int(e.genpoly[e.nroots-j]))]
			}
		}

		copy(parity, parity[1:])

		if int(feedback) != e.nn {
			parity[e.nroots-1] = e.alphaTo[e.modnn(int(feedback)+int(e.genpoly[0]))]
		} else {
			parity[e.nroots-1] = 0
		}
	}

	return parity
}

// modnn reduces x modulo nn without division; x stays within index range.
func (e *Encoder) modnn(x int) int {
	for x >= e.nn {
		x -= e.nn
		x = (x >> e.mm) + (x & e.nn)
	}
	return x
}
