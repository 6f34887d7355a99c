package afsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aprsmodem/internal/ax25"
	"aprsmodem/internal/bitstream"
)

func TestModulateDemodulateBitstream(t *testing.T) {
	p := ax25.Packet{
		From: "N0CALL-10",
		To:   "APZ001",
		Path: []string{"WIDE1-1", "WIDE2-2"},
		Data: []byte("Hello, APRS!"),
	}

	bits := bitstream.Basic{}.Encode(p, 45, 30)

	m := NewDDS(DefaultMark, DefaultSpace, DefaultBitrate, DefaultSampleRate, 1.0)
	d := NewDFTDemodulator(DefaultMark, DefaultSpace, DefaultBitrate, DefaultSampleRate)

	demodulated := d.Demodulate(modulateAll(m, bits))
	require.Equal(t, bits, demodulated)

	decoded, read, ok := bitstream.Basic{}.TryDecode(demodulated, 0)
	require.True(t, ok)
	// The scan consumes everything through the first postamble flag; the
	// remaining 29 flags stay for the next offset.
	assert.Equal(t, len(bits)-29*8, read)
	assert.Equal(t, p.String(), decoded.String())
}

func TestDemodulateIgnoresPartialWindow(t *testing.T) {
	d := NewDFTDemodulator(DefaultMark, DefaultSpace, DefaultBitrate, DefaultSampleRate)

	m := NewDDS(DefaultMark, DefaultSpace, DefaultBitrate, DefaultSampleRate, 1.0)
	samples := modulateAll(m, []byte{1, 0, 1})

	bits := d.Demodulate(samples[:len(samples)-7])
	assert.Equal(t, []byte{1, 0}, bits)
}

func TestDemodulateEmpty(t *testing.T) {
	d := NewDFTDemodulator(DefaultMark, DefaultSpace, DefaultBitrate, DefaultSampleRate)
	assert.Empty(t, d.Demodulate(nil))
}
