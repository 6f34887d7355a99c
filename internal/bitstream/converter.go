// Package bitstream converts between APRS packets and the NRZI-encoded
// on-air bit sequence. Two converters share one interface: Basic produces
// plain AX.25/HDLC framing, FX25 adds a Reed-Solomon envelope around it.
package bitstream

import (
	"aprsmodem/internal/ax25"
)

// Converter encodes packets to on-air bitstreams and scans received
// bitstreams for packets. Converters are stateless and safe to share.
type Converter interface {
	// Encode returns the complete NRZI-encoded bitstream for p, framed by
	// preambleFlags and postambleFlags HDLC flag patterns. An empty result
	// means the packet could not be encoded.
	Encode(p ax25.Packet, preambleFlags, postambleFlags int) []byte

	// TryDecode scans bits starting at offset for one frame. read is the
	// number of bits consumed whether or not a packet was recovered; zero
	// read means no further progress is possible and the caller should
	// stop scanning. A false return with nonzero read marks an invalid
	// candidate frame the caller may skip past.
	TryDecode(bits []byte, offset int) (p ax25.Packet, read int, ok bool)
}

// DefaultPreambleFlags and DefaultPostambleFlags frame a transmission when
// the caller has no timing-derived values.
const (
	DefaultPreambleFlags  = 45
	DefaultPostambleFlags = 5
)
