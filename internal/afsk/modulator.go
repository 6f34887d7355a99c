// Package afsk generates and recovers audio-frequency-shift-keyed signals.
// Four modulators produce one sample per call at a configured sample rate;
// the DFT demodulator turns received samples back into hard-decision bits.
package afsk

import "math"

const twoPi = 2 * math.Pi

// Default AFSK1200 parameters.
const (
	DefaultMark       = 1200.0
	DefaultSpace      = 2200.0
	DefaultBitrate    = 1200
	DefaultSampleRate = 48000
)

// Modulator converts bits to audio one sample at a time. Call Modulate
// exactly SamplesPerBit times per bit. Modulators hold phase state and are
// owned by a single transmitting goroutine; Reset returns to the initial
// state and must not be called mid-transmission, as it breaks phase
// continuity.
type Modulator interface {
	Modulate(bit byte) float64
	Reset()
	SamplesPerBit() int
}

// DDS is the smoothed direct-digital-synthesis AFSK modulator: the target
// frequency follows the input bit through a single-pole IIR, the phase
// accumulates modulo 2*pi, and the output is the cosine of the phase.
//
// Alpha sets how abruptly the frequency tracks bit transitions: low values
// reduce spectral splatter, high values sharpen decoder timing, and 1.0 is
// fully coherent switching.
type DDS struct {
	fMark      float64
	fSpace     float64
	sampleRate int
	alpha      float64

	freqSmooth float64
	phase      float64
	spb        int
}

// NewDDS returns a smoothed DDS modulator. samplesPerBit is
// sampleRate/bitrate and must divide evenly for correct timing; at
// standard AFSK1200 rates 48000/1200 = 40.
func NewDDS(fMark, fSpace float64, bitrate, sampleRate int, alpha float64) *DDS {
	return &DDS{
		fMark:      fMark,
		fSpace:     fSpace,
		sampleRate: sampleRate,
		alpha:      alpha,
		freqSmooth: fMark,
		spb:        sampleRate / bitrate,
	}
}

// Modulate produces the next audio sample for bit (1 = mark, 0 = space).
func (d *DDS) Modulate(bit byte) float64 {
	target := d.fSpace
	if bit == 1 {
		target = d.fMark
	}

	d.freqSmooth = d.alpha*target + (1-d.alpha)*d.freqSmooth

	d.phase = math.Mod(d.phase+twoPi*d.freqSmooth/float64(d.sampleRate), twoPi)

	return math.Cos(d.phase)
}

// Reset returns the modulator to its initial state. Calling it between
// samples of one transmission creates a phase discontinuity.
func (d *DDS) Reset() {
	d.freqSmooth = d.fMark
	d.phase = 0
}

// SamplesPerBit returns the number of samples per bit period.
func (d *DDS) SamplesPerBit() int {
	return d.spb
}
