package afsk

import "math"

// CPFSK is a true continuous-phase FSK modulator. The bit sequence is held
// as NRZ samples (+1 for a zero bit, -1 for a one bit) and integrated with
// the trapezoidal rule; the running integral scales the frequency
// deviation away from the center tone, which makes the phase analytically
// continuous across bit transitions.
type CPFSK struct {
	fCenter    float64
	fDelta     float64
	sampleRate int
	spb        int

	m      float64   // integral of the NRZ sequence
	nrz    []float64 // one entry per started bit period
	sample int
}

// NewCPFSK returns a CPFSK modulator for the given tone pair; the center
// frequency is their midpoint and the deviation half their difference.
func NewCPFSK(fMark, fSpace float64, bitrate, sampleRate int) *CPFSK {
	return &CPFSK{
		fCenter:    (fMark + fSpace) / 2,
		fDelta:     (fMark - fSpace) / 2,
		sampleRate: sampleRate,
		spb:        sampleRate / bitrate,
	}
}

// Modulate produces the next audio sample for bit. The first sample of
// each bit period pushes the bit's NRZ value onto the history; the sample
// index runs two ahead of the output position to keep the initial phase
// aligned with the integral.
func (c *CPFSK) Modulate(bit byte) float64 {
	if c.sample%c.spb == 0 {
		nrz := 1.0
		if bit == 1 {
			nrz = -1.0
		}
		c.nrz = append(c.nrz, nrz)
	}

	i := float64(c.sample + 2)
	rate := float64(c.sampleRate)

	if len(c.nrz) == 0 {
		c.sample++
		return math.Cos(twoPi * i * c.fCenter / rate)
	}

	idx := int(math.Ceil(i/float64(c.spb))) - 1
	idxPrev := int(math.Ceil((i-1)/float64(c.spb))) - 1
	idx = clamp(idx, 0, len(c.nrz)-1)
	idxPrev = clamp(idxPrev, 0, len(c.nrz)-1)

	// Trapezoidal integration of the NRZ sequence; m accumulates the
	// phase deviation in units of samples.
	c.m += (c.nrz[idxPrev] + c.nrz[idx]) / 2

	phase := twoPi*i*c.fCenter/rate - twoPi*c.m*c.fDelta/rate

	c.sample++
	return math.Cos(phase)
}

// Reset clears the integrator, the NRZ history and the sample counter.
// Calling it mid-transmission creates a phase discontinuity.
func (c *CPFSK) Reset() {
	c.m = 0
	c.nrz = c.nrz[:0]
	c.sample = 0
}

// SamplesPerBit returns the number of samples per bit period.
func (c *CPFSK) SamplesPerBit() int {
	return c.spb
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
