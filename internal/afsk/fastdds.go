package afsk

import "math"

// lutBits sizes the sine lookup table at 2^lutBits entries.
const lutBits = 10

// Sample is the output type of the fast DDS modulator: float64 for the
// normal audio path, int16 for direct PCM emission.
type Sample interface {
	float64 | int16
}

// FastDDS is the table-lookup DDS modulator: a 32-bit phase accumulator
// advances by a per-tone increment and the top bits index a precomputed
// sine table. There is no frequency smoothing; tone switches are
// phase-continuous but instantaneous.
type FastDDS[T Sample] struct {
	table    []T
	mask     uint32
	acc      uint32
	incMark  uint32
	incSpace uint32
	spb      int
	norm     float64
}

// NewFastDDS builds the sine table and the phase increments
// (f / sampleRate scaled to the 32-bit accumulator) for the given tone
// pair.
func NewFastDDS[T Sample](fMark, fSpace float64, bitrate, sampleRate int) *FastDDS[T] {
	m := &FastDDS[T]{
		table:    make([]T, 1<<lutBits),
		mask:     1<<lutBits - 1,
		incMark:  uint32(fMark * math.Exp2(32) / float64(sampleRate)),
		incSpace: uint32(fSpace * math.Exp2(32) / float64(sampleRate)),
		spb:      sampleRate / bitrate,
		norm:     1,
	}

	var zero T
	if _, ok := any(zero).(int16); ok {
		m.norm = 1.0 / 32767
	}

	for i := range m.table {
		s := math.Sin(twoPi * float64(i) / float64(len(m.table)))
		m.table[i] = T(s * (1 / m.norm))
	}

	return m
}

// Next advances the accumulator for bit and returns the table sample in
// the modulator's native type. This is the allocation-free hot path.
func (m *FastDDS[T]) Next(bit byte) T {
	inc := m.incSpace
	if bit == 1 {
		inc = m.incMark
	}
	m.acc += inc
	return m.table[(m.acc>>(32-lutBits))&m.mask]
}

// Modulate implements Modulator, normalizing int16 tables back to the
// [-1, 1] range.
func (m *FastDDS[T]) Modulate(bit byte) float64 {
	return float64(m.Next(bit)) * m.norm
}

// Reset clears the phase accumulator.
func (m *FastDDS[T]) Reset() {
	m.acc = 0
}

// SamplesPerBit returns the number of samples per bit period.
func (m *FastDDS[T]) SamplesPerBit() int {
	return m.spb
}
