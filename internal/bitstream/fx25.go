package bitstream

import (
	"github.com/sirupsen/logrus"

	"aprsmodem/internal/ax25"
	"aprsmodem/internal/bitio"
	"aprsmodem/internal/fx25"
)

// FX25 wraps the basic AX.25 bitstream in the FX.25 Reed-Solomon envelope.
// Only the transmit direction is implemented in this revision; TryDecode
// reports no progress. A future decoder searches the received bytes for
// any of the correlation tags bit-aligned, runs the RS correction over the
// following block, and hands the recovered bytes to the basic decoder.
type FX25 struct {
	// Logger, when set, records encode failures (oversized frames). The
	// zero value stays silent.
	Logger *logrus.Logger
}

// Encode produces the FX.25 on-air bitstream: the byte-aligned HDLC
// rendering of the frame (one flag on each side of the stuffed bits, flag
// bits as fill to the byte boundary) goes through the envelope, and the
// envelope bytes are framed by the preamble and postamble flags and
// NRZI-encoded. Frames too large for every FX.25 mode yield an empty
// bitstream.
func (c FX25) Encode(p ax25.Packet, preambleFlags, postambleFlags int) []byte {
	frame := ax25.EncodeFrame(p)

	inner := make([]byte, 0, 16+8*len(frame)+len(frame)/5)
	inner = bitio.AddFlags(inner, 1)
	inner = append(inner, bitio.Stuff(bitio.BytesToBits(frame))...)
	inner = bitio.AddFlags(inner, 1)
	inner = padToByte(inner)

	envelope, err := fx25.Encode(bitio.BitsToBytes(inner))
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithFields(logrus.Fields{
				"frame_bytes": len(frame),
			}).WithError(err).Warn("FX.25 encode failed")
		}
		return nil
	}

	bits := make([]byte, 0, 8*(preambleFlags+postambleFlags)+8*len(envelope))
	bits = bitio.AddFlags(bits, preambleFlags)
	bits = append(bits, bitio.BytesToBits(envelope)...)
	bits = bitio.AddFlags(bits, postambleFlags)

	bitio.NRZIEncode(bits)
	return bits
}

// TryDecode is a stub in this revision: FX.25 reception is not implemented
// and the scan cannot make progress.
func (FX25) TryDecode(bits []byte, offset int) (ax25.Packet, int, bool) {
	return ax25.Packet{}, 0, false
}

// padToByte extends bits with flag-pattern bits until the length is a
// multiple of eight.
func padToByte(bits []byte) []byte {
	flag := []byte{0, 1, 1, 1, 1, 1, 1, 0}
	for i := 0; len(bits)%8 != 0; i++ {
		bits = append(bits, flag[i%8])
	}
	return bits
}
