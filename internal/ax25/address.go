// Package ax25 implements the AX.25 UI frame codec used by APRS: the text
// address grammar with its n-N path aliases, the 7-byte shifted address
// encoding, and frame assembly/disassembly with control, PID and FCS.
package ax25

import (
	"strconv"
	"strings"
)

// Address is one AX.25 address slot in its semantic form.
//
// The path-alias form ("WIDE2-1") carries N and Remaining; the station form
// ("N0CALL-10") carries SSID. At most one of Remaining and SSID is
// meaningful per address.
type Address struct {
	Text      string // callsign prefix, up to 6 characters after normalization
	N         int    // path alias hop count 1..7, e.g. WIDE2 -> 2; 0 when absent
	Remaining int    // remaining hops 0..7, e.g. WIDE2-1 -> 1; 0 when absent
	SSID      int    // secondary station identifier 0..15
	Mark      bool   // has-been-repeated H-bit, rendered as a trailing *
}

// ParseAddress parses the text form TEXT[digit][-N|-SSID][*]. Parsing is
// lenient: input that does not fit the grammar is preserved verbatim in
// Text with all numeric fields zero.
func ParseAddress(s string) Address {
	a := Address{Text: s}

	if strings.HasSuffix(s, "*") {
		a.Mark = true
		s = s[:len(s)-1]
		a.Text = s
	}

	sep := strings.Index(s, "-")

	if sep < 0 {
		// Bare alias form, e.g. WIDE2.
		if s != "" && isDigit(s[len(s)-1]) {
			n := int(s[len(s)-1] - '0')
			if n >= 1 && n <= 7 {
				a.N = n
				a.Text = s[:len(s)-1]
			}
		}
		return a
	}

	// n-N alias form, e.g. WIDE1-1: exactly one digit on each side of the
	// separator and nothing after. Out-of-range digits leave the address
	// untouched rather than falling through to SSID parsing.
	if sep >= 1 && isDigit(s[sep-1]) && sep+1 < len(s) && isDigit(s[sep+1]) && sep+2 == len(s) {
		n := int(s[sep-1] - '0')
		rem := int(s[sep+1] - '0')
		if n >= 1 && n <= 7 && rem >= 0 && rem <= 7 {
			a.N = n
			a.Remaining = rem
			a.Text = s[:sep-1]
		}
		return a
	}

	// Station SSID form, e.g. CALL-1 or CALL-12.
	if sep+1 < len(s) && isDigit(s[sep+1]) {
		suffix := s[sep+1:]
		if len(suffix) == 1 || (len(suffix) == 2 && isDigit(suffix[1])) {
			if ssid, err := strconv.Atoi(suffix); err == nil && ssid >= 0 && ssid <= 15 {
				a.SSID = ssid
				a.Text = s[:sep]
			}
		}
	}

	return a
}

// String renders the address back to its text form. An empty Text yields an
// empty string. Numeric fields are appended even when they duplicate digits
// already present in Text; round-tripping normalizes, it does not validate.
func (a Address) String() string {
	if a.Text == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(a.Text)
	if a.N > 0 {
		sb.WriteByte(byte('0' + a.N))
	}
	if a.Remaining > 0 {
		sb.WriteByte('-')
		sb.WriteByte(byte('0' + a.Remaining))
	}
	if a.SSID > 0 {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(a.SSID))
	}
	if a.Mark {
		sb.WriteByte('*')
	}
	return sb.String()
}

// Encode converts the address to its 7-byte wire form. The alias hop digit
// is folded into the callsign text and Remaining displaces SSID, matching
// the semantic invariant that only one of the two is meaningful.
func (a Address) Encode(last bool) [7]byte {
	text := a.Text
	if a.N > 0 {
		text += string(byte('0' + a.N))
	}
	ssid := a.SSID
	if a.Remaining > 0 {
		ssid = a.Remaining
	}
	return EncodeAddress(text, ssid, a.Mark, last)
}

// EncodeAddress builds the 7-byte AX.25 address field: six callsign bytes
// shifted left one bit and space-padded, then the SSID/control byte.
//
// The SSID nibble is formed as (ssid+'0')<<1 over the 0x60 base. Since '0'
// is 0x30 and SSID is at most 15, the addition never carries out of the low
// nibble, so the byte equals (ssid<<1)|0x60 for every SSID 0..15.
func EncodeAddress(text string, ssid int, mark, last bool) [7]byte {
	var data [7]byte

	for i := 0; i < 6; i++ {
		if i < len(text) {
			data[i] = text[i] << 1
		} else {
			data[i] = ' ' << 1
		}
	}

	// SSID byte layout: H-bit | reserved (11) | SSID nibble | extension.
	data[6] = 0x60
	data[6] |= byte(ssid+'0') << 1
	if last {
		data[6] |= 0x01
	}
	if mark {
		data[6] |= 0x80
	}

	return data
}

// DecodeAddress reverses EncodeAddress on one 7-byte address field,
// recovering the callsign text, SSID and H-bit. The extension bit is the
// caller's concern.
func DecodeAddress(data []byte) (text string, ssid int, mark bool) {
	var sb strings.Builder
	for i := 0; i < 6; i++ {
		sb.WriteByte(data[i] >> 1)
	}
	text = strings.TrimRight(sb.String(), " ")
	ssid = int((data[6] >> 1) & 0x0F)
	mark = data[6]&0x80 != 0
	return text, ssid, mark
}

// decodeAddressString renders a decoded 7-byte address as the text form
// used in Packet fields; the n-N reinterpretation happens implicitly when
// the string is parsed again.
func decodeAddressString(data []byte) string {
	text, ssid, mark := DecodeAddress(data)
	var sb strings.Builder
	sb.WriteString(text)
	if ssid > 0 {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(ssid))
	}
	if mark {
		sb.WriteByte('*')
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
