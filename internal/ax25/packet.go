package ax25

import "strings"

// Packet is the APRS packet record at the codec boundary: source and
// destination addresses, the digipeater path, and the information payload.
// It is treated as an immutable value by the codec layers.
type Packet struct {
	From string
	To   string
	Path []string
	Data []byte
}

// String renders the packet in TNC2 monitor format:
// FROM>TO,PATH1,PATH2:payload
func (p Packet) String() string {
	var sb strings.Builder
	sb.WriteString(p.From)
	sb.WriteByte('>')
	sb.WriteString(p.To)
	for _, hop := range p.Path {
		sb.WriteByte(',')
		sb.WriteString(hop)
	}
	sb.WriteByte(':')
	sb.Write(p.Data)
	return sb.String()
}
