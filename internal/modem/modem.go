// Package modem drives the transmit and receive pipelines: packets are
// rendered through a bitstream converter and an AFSK modulator into an
// audio sink, and received audio is demodulated and scanned back into
// packets.
package modem

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"aprsmodem/internal/audio"
	"aprsmodem/internal/ax25"
	"aprsmodem/internal/bitstream"
)

// chunkSize is the render granularity: 480 samples is 10 ms at 48 kHz.
const chunkSize = 480

// preemphasisTau is the FM pre-emphasis time constant.
const preemphasisTau = 75e-6

// Demodulator converts received audio into hard-decision bits. It is
// treated as opaque by the modem.
type Demodulator interface {
	Demodulate(samples []float64) []byte
}

// Modulator is the per-sample signal generator the modem transmits with.
type Modulator interface {
	Modulate(bit byte) float64
	Reset()
	SamplesPerBit() int
}

// Modem owns one audio sink, one modulator and one converter. It is
// single-threaded: Transmit renders and pushes a full packet before
// returning, and the modulator's phase state belongs to the calling
// goroutine.
type Modem struct {
	out  audio.Writer
	mod  Modulator
	conv bitstream.Converter
	opts Options

	preambleFlags  int
	postambleFlags int
	logger         *logrus.Logger
}

// New returns a fully wired modem or an error; a modem missing any of its
// three collaborators cannot exist.
func New(out audio.Writer, mod Modulator, conv bitstream.Converter, opts Options, logger *logrus.Logger) (*Modem, error) {
	if out == nil {
		return nil, errors.New("modem: nil audio sink")
	}
	if mod == nil {
		return nil, errors.New("modem: nil modulator")
	}
	if conv == nil {
		return nil, errors.New("modem: nil converter")
	}
	if logger == nil {
		logger = logrus.New()
	}

	opts.normalize()
	preamble, postamble := opts.flagCounts()

	return &Modem{
		out:            out,
		mod:            mod,
		conv:           conv,
		opts:           opts,
		preambleFlags:  preamble,
		postambleFlags: postamble,
		logger:         logger,
	}, nil
}

// Options returns the normalized options the modem runs with.
func (m *Modem) Options() Options {
	return m.opts
}

// Transmit encodes p and renders it to the audio sink.
func (m *Modem) Transmit(p ax25.Packet) error {
	bits := m.conv.Encode(p, m.preambleFlags, m.postambleFlags)
	if len(bits) == 0 {
		return errors.New("modem: converter produced no bitstream")
	}

	m.logger.WithFields(logrus.Fields{
		"bits":      len(bits),
		"preamble":  m.preambleFlags,
		"postamble": m.postambleFlags,
	}).Debug("transmitting packet")

	return m.TransmitBits(bits)
}

// TransmitBits modulates an already-encoded bitstream and renders it:
// leading silence, the signal with optional pre-emphasis and gain, then
// trailing silence, pushed to the sink in fixed-size chunks.
func (m *Modem) TransmitBits(bits []byte) error {
	rate := m.out.SampleRate()
	spb := m.mod.SamplesPerBit()

	startSilence := int(m.opts.StartSilence * float64(rate))
	buf := make([]float64, startSilence+len(bits)*spb)

	w := startSilence
	for _, b := range bits {
		for i := 0; i < spb; i++ {
			buf[w] = m.mod.Modulate(b)
			w++
		}
	}
	m.mod.Reset() // transmission rendered; safe to rewind phase

	signal := buf[startSilence:]
	if m.opts.Preemphasis {
		preemphasize(signal, rate, preemphasisTau)
	}
	applyGain(signal, m.opts.Gain)

	for i := 0; i < startSilence; i++ {
		buf[i] = 0
	}
	endSilence := int(m.opts.EndSilence * float64(rate))
	buf = append(buf, make([]float64, endSilence)...)

	return m.render(buf)
}

// render pushes buf to the sink in chunkSize pieces, sleeping briefly when
// the sink reports backpressure with a zero-length write.
func (m *Modem) render(buf []float64) error {
	pos := 0
	for pos < len(buf) {
		end := pos + chunkSize
		if end > len(buf) {
			end = len(buf)
		}

		n, err := m.out.Write(buf[pos:end])
		if err != nil {
			return err
		}
		if n == 0 {
			time.Sleep(time.Millisecond)
			continue
		}
		pos += n
	}
	return nil
}

// Receive drains src, demodulates it, and scans the bit sequence for
// packets. Invalid candidates are skipped; the scan stops when the decoder
// can make no further progress.
func (m *Modem) Receive(src audio.Reader, demod Demodulator) ([]ax25.Packet, error) {
	var samples []float64
	chunk := make([]float64, 4096)
	for {
		n, err := src.Read(chunk)
		samples = append(samples, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}

	bits := demod.Demodulate(samples)

	var packets []ax25.Packet
	offset := 0
	for offset < len(bits) {
		p, read, ok := m.conv.TryDecode(bits, offset)
		if ok {
			packets = append(packets, p)
		}
		if read == 0 {
			break
		}
		offset += read
	}

	m.logger.WithFields(logrus.Fields{
		"samples": len(samples),
		"bits":    len(bits),
		"packets": len(packets),
	}).Debug("receive scan complete")

	return packets, nil
}

// preemphasize applies the first-order FM pre-emphasis high-pass in place.
// The filter state starts at the first sample, which suppresses the
// startup transient; the first sample itself passes through unchanged.
func preemphasize(samples []float64, sampleRate int, tau float64) {
	if len(samples) == 0 {
		return
	}

	alpha := math.Exp(-1 / (float64(sampleRate) * tau))

	xPrev := samples[0]
	yPrev := samples[0]
	for i := 1; i < len(samples); i++ {
		x := samples[i]
		y := x - xPrev + alpha*yPrev
		xPrev = x
		yPrev = y
		samples[i] = y
	}
}

func applyGain(samples []float64, gain float64) {
	for i := range samples {
		samples[i] *= gain
	}
}
