// Package fx25 wraps a byte-aligned AX.25 bitstream in the FX.25
// forward-error-correction envelope: a 64-bit correlation tag followed by a
// Reed-Solomon block whose data part carries the AX.25 bytes untouched.
// Legacy receivers decode the embedded frame as plain AX.25; FEC-aware
// receivers gain error correction from the parity bytes.
package fx25

import (
	"encoding/binary"
	"fmt"

	"aprsmodem/internal/fec"
)

// Mode is one row of the FX.25 correlation tag table.
type Mode struct {
	Tag uint64 // correlation tag, sent as 8 little-endian bytes
	N   int    // transmitted block size in bytes
	K   int    // data part of the block in bytes
}

// Parity returns the number of Reed-Solomon check bytes for the mode.
func (m Mode) Parity() int {
	return m.N - m.K
}

// Modes lists the supported correlation tags: the 16-check blocks from
// largest to smallest, then the 32-check blocks.
var Modes = [8]Mode{
	{Tag: 0xB74DB7DF8A532F3E, N: 255, K: 239}, // RS(255,239)
	{Tag: 0x26FF60A600CC8FDE, N: 144, K: 128}, // RS(144,128)
	{Tag: 0xC7DC0508F3D9B09E, N: 80, K: 64},   // RS(80,64)
	{Tag: 0x8F056EB4369660EE, N: 48, K: 32},   // RS(48,32)
	{Tag: 0x6E260B1AC5835FAE, N: 255, K: 223}, // RS(255,223)
	{Tag: 0xFF94DC634F1CFF4E, N: 160, K: 128}, // RS(160,128)
	{Tag: 0x1EB7B9CDBC09C00E, N: 96, K: 64},   // RS(96,64)
	{Tag: 0xDBF869BD2DBB1776, N: 64, K: 32},   // RS(64,32)
}

// PadByte fills the unused tail of the data block. The HDLC flag keeps
// legacy receivers idling between the embedded frame and the parity.
const PadByte = 0x7E

var (
	rs16 *fec.Encoder
	rs32 *fec.Encoder
)

func init() {
	var err error
	if rs16, err = fec.NewEncoder(8, 0x11D, 1, 1, 16); err != nil {
		panic(fmt.Sprintf("fx25: RS(255,239) init: %v", err))
	}
	if rs32, err = fec.NewEncoder(8, 0x11D, 1, 1, 32); err != nil {
		panic(fmt.Sprintf("fx25: RS(255,223) init: %v", err))
	}
}

// PickMode returns the mode with the smallest data part that holds n
// bytes; ties go to the earlier table entry, so the 16-check blocks win at
// equal K. ok is false when n exceeds every mode.
func PickMode(n int) (Mode, bool) {
	var best Mode
	found := false
	for _, m := range Modes {
		if n > m.K {
			continue
		}
		if !found || m.K < best.K {
			best = m
			found = true
		}
	}
	return best, found
}

// Encode wraps the byte-aligned AX.25 bitstream in an FX.25 envelope:
// correlation tag, the input padded to K bytes, and N-K parity bytes. It
// fails when the input does not fit any mode.
func Encode(ax25 []byte) ([]byte, error) {
	mode, ok := PickMode(len(ax25))
	if !ok {
		return nil, fmt.Errorf("fx25: %d bytes exceed the largest mode (%d)", len(ax25), Modes[0].K)
	}

	out := make([]byte, 0, 8+mode.N)
	out = binary.LittleEndian.AppendUint64(out, mode.Tag)

	block := make([]byte, mode.K)
	copy(block, ax25)
	for i := len(ax25); i < mode.K; i++ {
		block[i] = PadByte
	}
	out = append(out, block...)

	rs := rs16
	if mode.Parity() == 32 {
		rs = rs32
	}
	out = append(out, rs.Encode(block)...)

	return out, nil
}
