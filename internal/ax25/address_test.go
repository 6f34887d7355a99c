package ax25

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want Address
	}{
		{in: "WIDE2-1", want: Address{Text: "WIDE", N: 2, Remaining: 1}},
		{in: "WIDE2-1*", want: Address{Text: "WIDE", N: 2, Remaining: 1, Mark: true}},
		{in: "WIDE2", want: Address{Text: "WIDE", N: 2}},
		{in: "WIDE2*", want: Address{Text: "WIDE", N: 2, Mark: true}},
		{in: "N0CALL-10", want: Address{Text: "N0CALL", SSID: 10}},
		{in: "N0CALL-10*", want: Address{Text: "N0CALL", SSID: 10, Mark: true}},
		{in: "N0CALL", want: Address{Text: "N0CALL"}},
		{in: "APZ001", want: Address{Text: "APZ00", N: 1}},
		{in: "CALL-0", want: Address{Text: "CALL"}},
		// Out-of-range alias digits leave the text untouched.
		{in: "WIDE8-1", want: Address{Text: "WIDE8-1"}},
		{in: "WIDE1-9", want: Address{Text: "WIDE1-9"}},
		// SSID above 15 is rejected, text preserved.
		{in: "CALL-16", want: Address{Text: "CALL-16"}},
		// Lenient fallbacks.
		{in: "CALL-", want: Address{Text: "CALL-"}},
		{in: "CALL-X", want: Address{Text: "CALL-X"}},
		{in: "", want: Address{Text: ""}},
		{in: "*", want: Address{Text: "", Mark: true}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAddress(tt.in))
		})
	}
}

func TestAddressString(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{name: "alias with remaining", addr: Address{Text: "WIDE", N: 2, Remaining: 1}, want: "WIDE2-1"},
		{name: "alias with remaining used", addr: Address{Text: "WIDE", N: 2, Remaining: 1, Mark: true}, want: "WIDE2-1*"},
		{name: "alias exhausted", addr: Address{Text: "WIDE", N: 2, Mark: true}, want: "WIDE2*"},
		{name: "bare used", addr: Address{Text: "WIDE", Mark: true}, want: "WIDE*"},
		{name: "station with ssid", addr: Address{Text: "N0CALL", SSID: 10}, want: "N0CALL-10"},
		{name: "station with ssid used", addr: Address{Text: "N0CALL", SSID: 10, Mark: true}, want: "N0CALL-10*"},
		// String preserves the text even when the combination renders an
		// address that would not parse back.
		{name: "ssid duplicated in text", addr: Address{Text: "N0CALL-10", SSID: 10}, want: "N0CALL-10-10"},
		{name: "empty", addr: Address{Mark: true}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.String())
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	// parse(serialize(a)) == a for every address with nonempty letter-only
	// text and in-range numeric fields.
	rapid.Check(t, func(t *rapid.T) {
		a := Address{
			Text: rapid.StringMatching(`[A-Z]{1,4}`).Draw(t, "text"),
			Mark: rapid.Bool().Draw(t, "mark"),
		}
		switch rapid.IntRange(0, 2).Draw(t, "form") {
		case 0: // station form
			a.SSID = rapid.IntRange(0, 15).Draw(t, "ssid")
		case 1: // alias form
			a.N = rapid.IntRange(1, 7).Draw(t, "n")
		case 2: // alias with remaining hops
			a.N = rapid.IntRange(1, 7).Draw(t, "n")
			a.Remaining = rapid.IntRange(1, 7).Draw(t, "remaining")
		}

		assert.Equal(t, a, ParseAddress(a.String()))
	})
}

func TestEncodeAddress(t *testing.T) {
	tests := []struct {
		name string
		text string
		ssid int
		mark bool
		last bool
		want [7]byte
	}{
		{
			name: "N0CALL ssid 10",
			text: "N0CALL", ssid: 10,
			want: [7]byte{0x9C, 0x60, 0x86, 0x82, 0x98, 0x98, 0x74},
		},
		{
			name: "WIDE2 used",
			text: "WIDE2", ssid: 2, mark: true,
			want: [7]byte{0xAE, 0x92, 0x88, 0x8A, 0x64, 0x40, 0xE4},
		},
		{
			name: "APZ001 last",
			text: "APZ001", last: true,
			want: [7]byte{0x82, 0xA0, 0xB4, 0x60, 0x60, 0x62, 0x61},
		},
		{
			name: "WIDE1 last",
			text: "WIDE1", ssid: 1, last: true,
			want: [7]byte{0xAE, 0x92, 0x88, 0x8A, 0x62, 0x40, 0x63},
		},
		{
			name: "WIDE2 used last",
			text: "WIDE2", ssid: 2, mark: true, last: true,
			want: [7]byte{0xAE, 0x92, 0x88, 0x8A, 0x64, 0x40, 0xE5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeAddress(tt.text, tt.ssid, tt.mark, tt.last))
		})
	}
}

func TestDecodeAddress(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		text string
		ssid int
		mark bool
	}{
		{
			name: "N0CALL-10",
			data: []byte{0x9C, 0x60, 0x86, 0x82, 0x98, 0x98, 0x74},
			text: "N0CALL", ssid: 10,
		},
		{
			name: "WIDE2 used",
			data: []byte{0xAE, 0x92, 0x88, 0x8A, 0x64, 0x40, 0xE4},
			text: "WIDE2", ssid: 2, mark: true,
		},
		{
			name: "APZ001",
			data: []byte{0x82, 0xA0, 0xB4, 0x60, 0x60, 0x62, 0x61},
			text: "APZ001",
		},
		{
			name: "WIDE1-1",
			data: []byte{0xAE, 0x92, 0x88, 0x8A, 0x62, 0x40, 0x63},
			text: "WIDE1", ssid: 1,
		},
		{
			name: "separator in callsign",
			data: []byte{0xAE, 0x92, 0x88, 0x8A, 0x64, 0x5A, 0xE5},
			text: "WIDE2-", ssid: 2, mark: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ssid, mark := DecodeAddress(tt.data)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.ssid, ssid)
			assert.Equal(t, tt.mark, mark)
		})
	}
}
