package dnsmsg

import (
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// maxNameData is the longest stored form of a Name. The wire form adds a
// root terminator, so the full encoding is at most 255 octets (RFC 1035).
const maxNameData = 254

// A Name is a domain name in wire form: a run of (length octet, label
// bytes) pairs without the terminating root octet. The root name is the
// empty (or nil) slice. Build one with [NameBuilder] or [ParseName].
//
// Label case is preserved; use [Name.EqualFold] for lookups.
type Name []byte

// PackLen returns the encoded length of n including the root terminator.
// Always returns 1~255.
func (n Name) PackLen() int {
	l := len(n)
	if l > maxNameData {
		l = maxNameData // invalid length, let pack() fail
	}
	return l + 1
}

func (n Name) pack(msg []byte, off int) (int, error) {
	scanner := NewNameScanner(n)
	for scanner.Scan() {
		label := scanner.Label()
		var err error
		off, err = packByte(msg, off, byte(len(label)))
		if err != nil {
			return off, err
		}
		off, err = packBytes(msg, off, label)
		if err != nil {
			return off, err
		}
	}
	if err := scanner.Err(); err != nil {
		return off, err
	}
	return packByte(msg, off, 0)
}

// Copy returns a Name that shares no memory with n.
func (n Name) Copy() Name {
	if n == nil {
		return nil
	}
	c := make(Name, len(n))
	copy(c, n)
	return c
}

// EqualFold reports whether two names are equal under ASCII
// case-insensitive label comparison.
func (n Name) EqualFold(m Name) bool {
	if len(n) != len(m) {
		return false
	}
	for i := 0; i < len(n); i++ {
		a, b := n[i], m[i]
		if 'A' <= a && a <= 'Z' {
			a += 0x20
		}
		if 'A' <= b && b <= 'Z' {
			b += 0x20
		}
		if a != b {
			return false
		}
	}
	return true
}

// ToLower lowercases the labels of n in place. Returns an error if n is
// not valid wire form.
func (n Name) ToLower() error {
	scanner := NewNameScanner(n)
	for scanner.Scan() {
		asciiToLower(scanner.Label())
	}
	return scanner.Err()
}

// Readable converts n to the common dotted form. The root name is ".".
// There is no trailing dot. Unprintable bytes are escaped as \DDD, and
// '.' and '\' inside a label as "\." and "\\".
func (n Name) Readable() (string, error) {
	if len(n) == 0 {
		return ".", nil
	}
	b := make([]byte, 0, len(n)+8)
	scanner := NewNameScanner(n)
	started := false
	for scanner.Scan() {
		if started {
			b = append(b, '.')
		}
		started = true
		b = appendEscapedLabel(b, scanner.Label())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return string(b), nil
}

// String implements fmt.Stringer for logging. Invalid names render as
// "<invalid>".
func (n Name) String() string {
	s, err := n.Readable()
	if err != nil {
		return "<invalid>"
	}
	return s
}

func appendEscapedLabel(dst []byte, label []byte) []byte {
	for _, c := range label {
		switch {
		case c == '.' || c == '\\':
			dst = append(dst, '\\', c)
		case c < '!' || c > '~':
			dst = append(dst, '\\', '0'+c/100, '0'+c/10%10, '0'+c%10)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// ParseName converts a readable domain name to wire form. Names with
// non-ASCII runes are first mapped to their punycode (IDNA lookup) form.
// Empty input or "." yields the root name.
func ParseName(s string) (Name, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii, err := idna.Lookup.ToASCII(s)
			if err != nil {
				return nil, err
			}
			s = ascii
			break
		}
	}
	var b NameBuilder
	if err := b.ParseReadable([]byte(s)); err != nil {
		return nil, err
	}
	return b.ToName(), nil
}

// A NameBuilder accumulates labels into a wire form name. The zero value
// is ready to use and holds the root name.
type NameBuilder struct {
	buf [maxNameData]byte
	l   uint8
}

// AppendLabel appends one label. The label bytes are used as-is.
func (b *NameBuilder) AppendLabel(s []byte) error {
	l := len(s)
	if l == 0 {
		return errZeroLabel
	}
	if l > 63 {
		return ErrLabelTooLong
	}

	labelStart := int(b.l)
	labelEnd := labelStart + 1 + l
	if labelEnd > maxNameData {
		return ErrNameTooLong
	}

	b.buf[labelStart] = byte(l)
	copy(b.buf[labelStart+1:], s)
	b.l = uint8(labelEnd)
	return nil
}

func (b *NameBuilder) Reset() {
	b.l = 0
}

// ParseReadable parses a dotted name. Empty s or "." is the root name.
// Both FQDN and non-FQDN forms are accepted. The escape forms that
// [Name.Readable] emits ("\.", "\\", "\DDD") are recognized, so any
// valid name survives a Readable/ParseReadable round trip.
func (b *NameBuilder) ParseReadable(s []byte) error {
	b.Reset()

	if len(s) == 0 || (len(s) == 1 && s[0] == '.') {
		return nil
	}

	var label [63]byte
	ll := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if ll == 0 {
				return errZeroLabel
			}
			if err := b.AppendLabel(label[:ll]); err != nil {
				return err
			}
			ll = 0
			continue
		}
		if c == '\\' {
			if i+1 >= len(s) {
				return errBadEscape
			}
			i++
			c = s[i]
			if isDigit(c) {
				// \DDD: exactly three decimal digits, one octet.
				if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
					return errBadEscape
				}
				v := int(c-'0')*100 + int(s[i+1]-'0')*10 + int(s[i+2]-'0')
				if v > 255 {
					return errBadEscape
				}
				c = byte(v)
				i += 2
			}
		}
		if ll == len(label) {
			return ErrLabelTooLong
		}
		label[ll] = c
		ll++
	}
	if ll > 0 {
		return b.AppendLabel(label[:ll])
	}
	return nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Parse builds the name from a label slice. An empty slice is the root.
func (b *NameBuilder) Parse(labels [][]byte) error {
	b.Reset()
	for _, label := range labels {
		if err := b.AppendLabel(label); err != nil {
			return err
		}
	}
	return nil
}

// Data returns the accumulated wire form. The slice aliases the builder.
func (b *NameBuilder) Data() []byte {
	return b.buf[:b.l]
}

// ToName returns the accumulated name as an independent Name.
func (b *NameBuilder) ToName() Name {
	n := make(Name, b.l)
	copy(n, b.buf[:])
	return n
}

// unpack reads a wire format name from msg at off, following compression
// pointers. A pointer must land strictly before its own position, and no
// offset may be visited twice. Returns the offset of the first byte after
// the name (pointers do not count towards it).
func (b *NameBuilder) unpack(msg []byte, off int) (int, error) {
	return b.unpackMsg(msg, off, true)
}

func (b *NameBuilder) unpackMsg(msg []byte, off int, allowPtr bool) (int, error) {
	// currOff is the current working offset, newOff the offset where the
	// next field starts. Bytes reached through a pointer belong to another
	// name and do not advance newOff.
	currOff := off
	newOff := off
	ptrSeen := false
	var visited map[int]struct{} // lazy, pointer chains are rare

	name := b.buf[:0]

Loop:
	for {
		if currOff >= len(msg) {
			return off, ErrTruncatedInput
		}
		c := int(msg[currOff])
		switch c & 0xC0 {
		case 0x00: // label
			if c == 0x00 {
				currOff++
				break Loop
			}
			endOff := currOff + 1 + c
			if endOff > len(msg) {
				return off, ErrTruncatedInput
			}
			if len(name)+1+c > maxNameData {
				return off, ErrNameTooLong
			}
			name = append(name, byte(c))
			name = append(name, msg[currOff+1:endOff]...)
			currOff = endOff
		case 0xC0: // pointer
			if !allowPtr {
				return off, ErrCompressedSRV
			}
			if currOff+1 >= len(msg) {
				return off, ErrInvalidPointer
			}
			target := (c^0xC0)<<8 | int(msg[currOff+1])
			if !ptrSeen {
				newOff = currOff + 2
				ptrSeen = true
			}
			// Only backward references are valid; forward and
			// self references cannot describe already-seen data.
			if target >= currOff {
				return off, ErrInvalidPointer
			}
			if visited == nil {
				visited = make(map[int]struct{}, 4)
			}
			if _, ok := visited[target]; ok {
				return off, ErrPointerLoop
			}
			visited[target] = struct{}{}
			currOff = target
		default:
			// Prefixes 0x40 and 0x80 are reserved.
			return off, errReservedLabelBits
		}
	}

	if !ptrSeen {
		newOff = currOff
	}
	b.l = uint8(len(name))
	return newOff, nil
}

func unpackName(msg []byte, off int) (Name, int, error) {
	var b NameBuilder
	off, err := b.unpack(msg, off)
	if err != nil {
		return nil, off, err
	}
	return b.ToName(), off, nil
}

// A NameScanner iterates over the labels of a stored wire form name.
type NameScanner struct {
	n   []byte
	off int
	err error

	label []byte
}

func NewNameScanner(n []byte) NameScanner {
	return NameScanner{n: n}
}

func (s *NameScanner) Scan() bool {
	s.label = nil
	if len(s.n) > maxNameData {
		s.err = ErrNameTooLong
		return false
	}
	if s.off > len(s.n)-1 {
		return false
	}

	labelLen := int(s.n[s.off])
	if labelLen == 0 {
		s.err = errZeroLabel
		return false
	}
	if labelLen > 63 {
		s.err = ErrLabelTooLong
		return false
	}

	labelStart := s.off + 1
	labelEnd := labelStart + labelLen
	if labelEnd > len(s.n) {
		s.err = errInvalidName
		return false
	}

	s.label = s.n[labelStart:labelEnd]
	s.off = labelEnd
	return true
}

func (s *NameScanner) Label() []byte {
	return s.label
}

func (s *NameScanner) Err() error {
	return s.err
}
