package dnsmsg

import (
	"github.com/nsforge/dnsmsg/internal/mlog"
)

// A Msg is one complete DNS message. Section counts are not stored: they
// are derived from the slice lengths on encode, so the header can never
// disagree with the content.
type Msg struct {
	Header
	Questions   []Question
	Answers     []Resource
	Authorities []Resource
	Additionals []Resource
}

// Len is the packed msg length. Compression is never emitted, so this is
// exact.
func (m *Msg) Len() (l int) {
	if m == nil {
		return 0
	}
	l = 12 // header

	for i := range m.Questions {
		l += m.Questions[i].Len()
	}
	for _, rs := range [...][]Resource{m.Answers, m.Authorities, m.Additionals} {
		for i := range rs {
			l += rs[i].packLen()
		}
	}
	return l
}

// Copy returns a deep copy of m.
func (m *Msg) Copy() *Msg {
	c := &Msg{Header: m.Header}
	if m.Questions != nil {
		c.Questions = make([]Question, len(m.Questions))
		for i := range m.Questions {
			c.Questions[i] = m.Questions[i].Copy()
		}
	}
	c.Answers = copyResources(m.Answers)
	c.Authorities = copyResources(m.Authorities)
	c.Additionals = copyResources(m.Additionals)
	return c
}

func copyResources(rs []Resource) []Resource {
	if rs == nil {
		return nil
	}
	c := make([]Resource, len(rs))
	for i := range rs {
		c[i] = rs[i].Copy()
	}
	return c
}

// UnpackMsg decodes one message. On error no message is returned; decode
// is all-or-nothing.
func UnpackMsg(msg []byte) (*Msg, error) {
	m := new(Msg)
	if err := m.Unpack(msg); err != nil {
		return nil, err
	}
	return m, nil
}

// Unpack decodes msg into m, replacing its previous content. After an
// error m's content is undefined.
//
// Bytes past the declared sections are ignored (transports may pad), but
// are reported at debug level.
func (m *Msg) Unpack(msg []byte) error {
	var off int
	var h header
	off, err := h.unpack(msg, off)
	if err != nil {
		return newSectionErr("header", err)
	}
	m.Header, err = h.header()
	if err != nil {
		return newSectionErr("header", err)
	}

	m.Questions = nil
	m.Answers = nil
	m.Authorities = nil
	m.Additionals = nil

	for i := 0; i < int(h.questions); i++ {
		var q Question
		q, off, err = unpackQuestion(msg, off)
		if err != nil {
			return newSectionErr("questions", err)
		}
		m.Questions = append(m.Questions, q)
	}

	for _, sec := range [...]struct {
		name  string
		count uint16
		out   *[]Resource
	}{
		{"answers", h.answers, &m.Answers},
		{"authorities", h.authorities, &m.Authorities},
		{"additionals", h.additionals, &m.Additionals},
	} {
		for i := 0; i < int(sec.count); i++ {
			var r Resource
			r, off, err = unpackResource(msg, off)
			if err != nil {
				return newSectionErr(sec.name, err)
			}
			*sec.out = append(*sec.out, r)
		}
	}

	if trailing := len(msg) - off; trailing > 0 {
		mlog.L().Debug().
			Uint16("id", m.ID).
			Int("bytes", trailing).
			Msg("ignoring trailing bytes after message")
	}
	return nil
}

// Pack encodes m into b and returns the message size. b must hold at
// least [Msg.Len] bytes or ErrCapacityExceeded is returned. The header
// counts are taken from the section slices, not from any caller-supplied
// value.
func (m *Msg) Pack(b []byte) (int, error) {
	// It is very unlikely that anyone will try to pack more than 65535
	// of any particular section, but it is possible and we should fail
	// gracefully.
	if len(m.Questions) > int(^uint16(0)) {
		return 0, errTooManyQuestions
	}
	if len(m.Answers) > int(^uint16(0)) {
		return 0, errTooManyAnswers
	}
	if len(m.Authorities) > int(^uint16(0)) {
		return 0, errTooManyAuthorities
	}
	if len(m.Additionals) > int(^uint16(0)) {
		return 0, errTooManyAdditionals
	}

	var h header
	h.id, h.bits = m.Header.Pack()
	h.questions = uint16(len(m.Questions))
	h.answers = uint16(len(m.Answers))
	h.authorities = uint16(len(m.Authorities))
	h.additionals = uint16(len(m.Additionals))

	off, err := h.pack(b, 0)
	if err != nil {
		return off, newSectionErr("header", err)
	}

	for i := range m.Questions {
		if off, err = m.Questions[i].pack(b, off); err != nil {
			return off, newSectionErr("question", err)
		}
	}
	for i := range m.Answers {
		if off, err = m.Answers[i].pack(b, off); err != nil {
			return off, newSectionErr("answer", err)
		}
	}
	for i := range m.Authorities {
		if off, err = m.Authorities[i].pack(b, off); err != nil {
			return off, newSectionErr("authority", err)
		}
	}
	for i := range m.Additionals {
		if off, err = m.Additionals[i].pack(b, off); err != nil {
			return off, newSectionErr("additional", err)
		}
	}
	return off, nil
}

// AppendPack encodes m and appends the wire form to dst, growing it as
// needed. It never fails for lack of capacity.
func (m *Msg) AppendPack(dst []byte) ([]byte, error) {
	start := len(dst)
	dst = append(dst, make([]byte, m.Len())...)
	n, err := m.Pack(dst[start:])
	if err != nil {
		return dst[:start], err
	}
	return dst[:start+n], nil
}
