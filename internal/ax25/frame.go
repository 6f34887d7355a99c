package ax25

import (
	"aprsmodem/internal/bitio"
)

const (
	// ControlUI is the control byte for an unnumbered information frame.
	ControlUI = 0x03
	// PIDNone is the PID byte for "no layer 3 protocol".
	PIDNone = 0xF0

	// MinFrameLen is the smallest valid frame: two addresses, control,
	// PID and the two FCS bytes.
	MinFrameLen = 2*7 + 1 + 1 + 2
)

// EncodeFrame assembles the AX.25 UI frame for p: destination and source
// address fields, the digipeater path, control and PID bytes, the payload,
// and the FCS low byte first.
//
// The extension bit is set on the final address field; when the path is
// empty that is the source address, so the header always terminates.
func EncodeFrame(p Packet) []byte {
	from := ParseAddress(p.From)
	to := ParseAddress(p.To)
	path := make([]Address, 0, len(p.Path))
	for _, hop := range p.Path {
		path = append(path, ParseAddress(hop))
	}

	frame := make([]byte, 0, 14+7*len(path)+2+len(p.Data)+2)

	toBytes := to.Encode(false)
	frame = append(frame, toBytes[:]...)

	fromBytes := from.Encode(len(path) == 0)
	frame = append(frame, fromBytes[:]...)

	for i, hop := range path {
		hopBytes := hop.Encode(i == len(path)-1)
		frame = append(frame, hopBytes[:]...)
	}

	frame = append(frame, ControlUI, PIDNone)
	frame = append(frame, p.Data...)

	fcs := bitio.ComputeCRC(frame)
	frame = append(frame, fcs[0], fcs[1])

	return frame
}

// DecodeFrame disassembles an AX.25 UI frame back into a Packet. It returns
// false for frames shorter than MinFrameLen, FCS mismatches, a missing
// control byte, or a control byte that is not aligned on an address
// boundary.
func DecodeFrame(frame []byte) (Packet, bool) {
	if len(frame) < MinFrameLen {
		return Packet{}, false
	}

	fcs := bitio.ComputeCRC(frame[:len(frame)-2])
	if fcs[0] != frame[len(frame)-2] || fcs[1] != frame[len(frame)-1] {
		return Packet{}, false
	}

	to := decodeAddressString(frame[0:7])
	from := decodeAddressString(frame[7:14])

	// The control byte terminates the address chain. A well-formed address
	// field never contains 0x03 in its SSID byte (the extension bit implies
	// at least the 0x60 base), so the first occurrence past the fixed
	// addresses must itself sit on a 7-byte boundary.
	control := -1
	for i := 14; i < len(frame)-2; i++ {
		if frame[i] == ControlUI {
			control = i
			break
		}
	}
	if control < 0 || (control-14)%7 != 0 || control+1 >= len(frame)-2 {
		return Packet{}, false
	}

	var path []string
	for i := 14; i < control; i += 7 {
		path = append(path, decodeAddressString(frame[i:i+7]))
	}

	payload := append([]byte(nil), frame[control+2:len(frame)-2]...)

	return Packet{From: from, To: to, Path: path, Data: payload}, true
}
