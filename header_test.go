package dnsmsg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderFlagPacking(t *testing.T) {
	r := require.New(t)

	want := Header{
		Response:           true,
		Authoritative:      true,
		RecursionDesired:   true,
		RecursionAvailable: true,
	}
	_, bits := want.Pack()
	r.Equal(uint16(0x8580), bits)

	got, err := (&header{bits: 0x8580}).header()
	r.NoError(err)
	r.Equal(want, got)
}

func TestHeaderUnknownCodes(t *testing.T) {
	r := require.New(t)

	// Opcode 9 and rcode 13 are unassigned; both survive a round trip.
	want := Header{ID: 7, OpCode: 9, RCode: 13}
	id, bits := want.Pack()
	got, err := (&header{id: id, bits: bits}).header()
	r.NoError(err)
	r.Equal(want, got)
}

func TestHeaderDNSSECBits(t *testing.T) {
	r := require.New(t)

	want := Header{AuthenticData: true, CheckingDisabled: true}
	_, bits := want.Pack()
	r.Equal(uint16(headerBitAD|headerBitCD), bits)

	got, err := (&header{bits: bits}).header()
	r.NoError(err)
	r.Equal(want, got)
}

func TestHeaderReservedBit(t *testing.T) {
	r := require.New(t)

	buf := make([]byte, 12)
	putUint16(buf[2:], headerBitZ)

	var m Msg
	err := m.Unpack(buf)
	r.ErrorIs(err, errReservedHeaderBit)
}
