package dnsmsg

// A Question is one entry of the question section.
type Question struct {
	Name  Name
	Type  Type
	Class Class
}

// Len is the packed size of the question.
func (q *Question) Len() int {
	return q.Name.PackLen() + 4 // type and class (2*uint16)
}

// Copy returns a question that shares no memory with q.
func (q *Question) Copy() Question {
	return Question{Name: q.Name.Copy(), Type: q.Type, Class: q.Class}
}

func (q *Question) pack(msg []byte, off int) (int, error) {
	off, err := q.Name.pack(msg, off)
	if err != nil {
		return off, newSectionErr("name", err)
	}
	off, err = packUint16(msg, off, uint16(q.Type))
	if err != nil {
		return off, newSectionErr("type", err)
	}
	off, err = packUint16(msg, off, uint16(q.Class))
	if err != nil {
		return off, newSectionErr("class", err)
	}
	return off, nil
}

func unpackQuestion(msg []byte, off int) (Question, int, error) {
	name, off, err := unpackName(msg, off)
	if err != nil {
		return Question{}, 0, newSectionErr("name", err)
	}
	typ, off, err := unpackUint16Msg(msg, off)
	if err != nil {
		return Question{}, 0, newSectionErr("type", err)
	}
	cls, off, err := unpackUint16Msg(msg, off)
	if err != nil {
		return Question{}, 0, newSectionErr("class", err)
	}
	return Question{Name: name, Type: Type(typ), Class: Class(cls)}, off, nil
}
