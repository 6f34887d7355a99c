package afsk

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DFTDemodulator recovers hard-decision bits from AFSK audio. Each bit
// window is correlated against quadrature references at the mark and space
// frequencies - a single-bin DFT per tone - and the stronger tone decides
// the bit. The correlation magnitude is phase-invariant, so continuous
// phase across bit boundaries does not disturb the decision.
//
// The demodulator assumes the stream starts on a bit boundary and that the
// sample rate is an integer multiple of the bitrate.
type DFTDemodulator struct {
	spb int

	markCos  []float64
	markSin  []float64
	spaceCos []float64
	spaceSin []float64
}

// NewDFTDemodulator precomputes the per-tone reference vectors for one bit
// window.
func NewDFTDemodulator(fMark, fSpace float64, bitrate, sampleRate int) *DFTDemodulator {
	d := &DFTDemodulator{spb: sampleRate / bitrate}

	d.markCos, d.markSin = toneRefs(fMark, sampleRate, d.spb)
	d.spaceCos, d.spaceSin = toneRefs(fSpace, sampleRate, d.spb)

	return d
}

// Demodulate converts samples to bits, one per full bit window. A trailing
// partial window is ignored.
func (d *DFTDemodulator) Demodulate(samples []float64) []byte {
	bits := make([]byte, 0, len(samples)/d.spb)

	for start := 0; start+d.spb <= len(samples); start += d.spb {
		window := samples[start : start+d.spb]

		mark := energy(window, d.markCos, d.markSin)
		space := energy(window, d.spaceCos, d.spaceSin)

		if mark >= space {
			bits = append(bits, 1)
		} else {
			bits = append(bits, 0)
		}
	}

	return bits
}

// SamplesPerBit returns the demodulator's bit window size in samples.
func (d *DFTDemodulator) SamplesPerBit() int {
	return d.spb
}

func toneRefs(freq float64, sampleRate, spb int) (cosRef, sinRef []float64) {
	cosRef = make([]float64, spb)
	sinRef = make([]float64, spb)
	for n := range cosRef {
		phase := twoPi * freq * float64(n) / float64(sampleRate)
		cosRef[n] = math.Cos(phase)
		sinRef[n] = math.Sin(phase)
	}
	return cosRef, sinRef
}

func energy(window, cosRef, sinRef []float64) float64 {
	i := floats.Dot(window, cosRef)
	q := floats.Dot(window, sinRef)
	return i*i + q*q
}
