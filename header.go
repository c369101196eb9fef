package dnsmsg

// Flag bits of the second header word. The remaining bits hold the
// opcode (bits 11-14) and rcode (bits 0-3).
const (
	headerBitQR = 1 << 15 // query/response (response=1)
	headerBitAA = 1 << 10 // authoritative
	headerBitTC = 1 << 9  // truncated
	headerBitRD = 1 << 8  // recursion desired
	headerBitRA = 1 << 7  // recursion available
	headerBitZ  = 1 << 6  // reserved, must be zero
	headerBitAD = 1 << 5  // authentic data
	headerBitCD = 1 << 4  // checking disabled
)

// header is the fixed 12-byte wire header.
type header struct {
	id          uint16
	bits        uint16
	questions   uint16
	answers     uint16
	authorities uint16
	additionals uint16
}

func (h *header) header() (Header, error) {
	if h.bits&headerBitZ != 0 {
		return Header{}, errReservedHeaderBit
	}
	return Header{
		ID:                 h.id,
		Response:           (h.bits & headerBitQR) != 0,
		OpCode:             OpCode(h.bits>>11) & 0xF,
		Authoritative:      (h.bits & headerBitAA) != 0,
		Truncated:          (h.bits & headerBitTC) != 0,
		RecursionDesired:   (h.bits & headerBitRD) != 0,
		RecursionAvailable: (h.bits & headerBitRA) != 0,
		AuthenticData:      (h.bits & headerBitAD) != 0,
		CheckingDisabled:   (h.bits & headerBitCD) != 0,
		RCode:              RCode(h.bits & 0xF),
	}, nil
}

func (h *header) pack(msg []byte, off int) (int, error) {
	var err error
	for _, v := range [...]uint16{h.id, h.bits, h.questions, h.answers, h.authorities, h.additionals} {
		off, err = packUint16(msg, off, v)
		if err != nil {
			return off, err
		}
	}
	return off, nil
}

func (h *header) unpack(msg []byte, off int) (int, error) {
	hdr := msg[off:]
	if len(hdr) < 12 {
		return 0, ErrTruncatedInput
	}
	h.id = unpackUint16(hdr[0:2])
	h.bits = unpackUint16(hdr[2:4])
	h.questions = unpackUint16(hdr[4:6])
	h.answers = unpackUint16(hdr[6:8])
	h.authorities = unpackUint16(hdr[8:10])
	h.additionals = unpackUint16(hdr[10:12])
	return off + 12, nil
}

// Header is a representation of a DNS message header. The section counts
// are not part of it; they are derived from the section slices of [Msg]
// on encode and checked against the buffer on decode.
//
// There is no field for the reserved Z bit: it must be zero on the wire
// and decode rejects messages where it is set.
type Header struct {
	ID                 uint16
	Response           bool
	OpCode             OpCode
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	AuthenticData      bool
	CheckingDisabled   bool
	RCode              RCode
}

// Pack returns the two leading wire words of the header.
func (m *Header) Pack() (id uint16, bits uint16) {
	id = m.ID
	bits = uint16(m.OpCode&0xF)<<11 | uint16(m.RCode&0xF)
	if m.Response {
		bits |= headerBitQR
	}
	if m.Authoritative {
		bits |= headerBitAA
	}
	if m.Truncated {
		bits |= headerBitTC
	}
	if m.RecursionDesired {
		bits |= headerBitRD
	}
	if m.RecursionAvailable {
		bits |= headerBitRA
	}
	if m.AuthenticData {
		bits |= headerBitAD
	}
	if m.CheckingDisabled {
		bits |= headerBitCD
	}
	return
}
