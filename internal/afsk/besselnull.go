package afsk

import "math"

// BesselNull is a calibration modulator: it ignores the input bit and
// alternates between the mark and space tones every bit period, blending
// across the boundary with a precomputed raised-cosine window. Feeding its
// output through a transmitter while adjusting deviation locates the
// carrier Bessel null, which pins the modulation index.
type BesselNull struct {
	fMark  float64
	fSpace float64

	sampleRate  int
	spb         int
	transition  int
	window      []float64
	phase       float64
	sampleIndex int
	currentFreq float64
	useMark     bool
}

// NewBesselNull returns a calibration modulator whose tone transitions
// span alpha*samplesPerBit samples (at least one).
func NewBesselNull(fMark, fSpace float64, bitrate, sampleRate int, alpha float64) *BesselNull {
	b := &BesselNull{
		fMark:       fMark,
		fSpace:      fSpace,
		sampleRate:  sampleRate,
		spb:         sampleRate / bitrate,
		currentFreq: fMark,
		useMark:     true,
	}

	b.transition = int(alpha * float64(b.spb))
	if b.transition < 1 {
		b.transition = 1
	}

	b.window = make([]float64, b.transition)
	if b.transition == 1 {
		b.window[0] = 1
	} else {
		for i := range b.window {
			x := float64(i) / float64(b.transition-1)
			b.window[i] = 0.5 * (1 - math.Cos(math.Pi*x))
		}
	}

	return b
}

// Modulate emits the next calibration sample; the bit argument is ignored.
func (b *BesselNull) Modulate(_ byte) float64 {
	target := b.fSpace
	prev := b.fMark
	if b.useMark {
		target, prev = b.fMark, b.fSpace
	}

	freq := target
	if b.sampleIndex < b.transition {
		blend := b.window[b.sampleIndex]
		freq = prev + (target-prev)*blend
	}
	b.currentFreq = freq

	out := math.Sin(b.phase)

	b.phase += twoPi * freq / float64(b.sampleRate)
	for b.phase >= twoPi {
		b.phase -= twoPi
	}
	for b.phase < 0 {
		b.phase += twoPi
	}

	b.sampleIndex++
	if b.sampleIndex >= b.spb {
		b.sampleIndex = 0
		b.useMark = !b.useMark
	}

	return out
}

// Reset restores the initial phase and tone toggle state.
func (b *BesselNull) Reset() {
	b.phase = 0
	b.sampleIndex = 0
	b.currentFreq = b.fMark
	b.useMark = true
}

// SamplesPerBit returns the number of samples per bit period.
func (b *BesselNull) SamplesPerBit() int {
	return b.spb
}
