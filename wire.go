package dnsmsg

import "encoding/binary"

// Low level cursor helpers. All multi-byte integers are big-endian on the
// wire. unpack* helpers return the value and the new offset; pack* helpers
// write into a fixed-size buffer and return the new offset.

func packByte(b []byte, off int, v byte) (int, error) {
	if off+1 <= len(b) {
		b[off] = v
		return off + 1, nil
	}
	return off, ErrCapacityExceeded
}

func packUint16(b []byte, off int, v uint16) (int, error) {
	if off+2 <= len(b) {
		binary.BigEndian.PutUint16(b[off:], v)
		return off + 2, nil
	}
	return off, ErrCapacityExceeded
}

func packUint32(b []byte, off int, v uint32) (int, error) {
	if off+4 <= len(b) {
		binary.BigEndian.PutUint32(b[off:], v)
		return off + 4, nil
	}
	return off, ErrCapacityExceeded
}

func packBytes(b []byte, off int, v []byte) (int, error) {
	if off+len(v) <= len(b) {
		copy(b[off:], v)
		return off + len(v), nil
	}
	return off, ErrCapacityExceeded
}

func putUint16(b []byte, v uint16) {
	binary.BigEndian.PutUint16(b, v)
}

func unpackUint16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

func unpackUint16Msg(msg []byte, off int) (uint16, int, error) {
	buf := msg[off:]
	if len(buf) < 2 {
		return 0, 0, ErrTruncatedInput
	}
	return unpackUint16(buf), off + 2, nil
}

func unpackUint32Msg(msg []byte, off int) (uint32, int, error) {
	buf := msg[off:]
	if len(buf) < 4 {
		return 0, 0, ErrTruncatedInput
	}
	return binary.BigEndian.Uint32(buf), off + 4, nil
}

// unpackBytesMsg copies l bytes out of msg so the result does not alias
// the input buffer.
func unpackBytesMsg(msg []byte, off int, l int) ([]byte, int, error) {
	buf := msg[off:]
	if len(buf) < l {
		return nil, 0, ErrTruncatedInput
	}
	out := make([]byte, l)
	copy(out, buf)
	return out, off + l, nil
}

func asciiToLower(b []byte) {
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 0x20
		}
	}
}
