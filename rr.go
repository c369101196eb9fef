package dnsmsg

// A Resource is one resource record. Data holds the [RData] variant for
// the record's Type; decode fills it with the modeled shape when there is
// one and with [RDataOpaque] otherwise.
type Resource struct {
	Name  Name
	Type  Type
	Class Class
	TTL   uint32
	Data  RData
}

// packLen is the packed size without compression.
func (rr *Resource) packLen() int {
	l := rr.Name.PackLen()
	l += 10 // type, class, ttl (uint32), length
	if rr.Data != nil {
		dataLen := rr.Data.packLen()
		if dataLen > 65535 {
			dataLen = 65535 // let pack fail
		}
		l += dataLen
	}
	return l
}

// Copy returns a record that shares no memory with rr.
func (rr *Resource) Copy() Resource {
	c := Resource{
		Name:  rr.Name.Copy(),
		Type:  rr.Type,
		Class: rr.Class,
		TTL:   rr.TTL,
	}
	if rr.Data != nil {
		c.Data = rr.Data.clone()
	}
	return c
}

func (rr *Resource) pack(msg []byte, off int) (int, error) {
	if rr.Type == TypeOPT {
		return off, ErrUnsupportedExtension
	}
	if rr.Data == nil {
		return off, errNilRData
	}
	off, err := rr.Name.pack(msg, off)
	if err != nil {
		return off, newSectionErr("name", err)
	}
	off, err = packUint16(msg, off, uint16(rr.Type))
	if err != nil {
		return off, newSectionErr("type", err)
	}
	off, err = packUint16(msg, off, uint16(rr.Class))
	if err != nil {
		return off, newSectionErr("class", err)
	}
	off, err = packUint32(msg, off, rr.TTL)
	if err != nil {
		return off, newSectionErr("ttl", err)
	}

	// Length is backpatched once the data has been serialized.
	lenOff := off
	off, err = packUint16(msg, off, 0)
	if err != nil {
		return off, newSectionErr("length", err)
	}
	dataStart := off
	off, err = rr.Data.pack(msg, off)
	if err != nil {
		return off, newSectionErr("data", err)
	}
	dataLen := off - dataStart
	if dataLen > 65535 {
		return off, errRdataTooLong
	}
	putUint16(msg[lenOff:], uint16(dataLen))
	return off, nil
}

func unpackResource(msg []byte, off int) (Resource, int, error) {
	name, off, err := unpackName(msg, off)
	if err != nil {
		return Resource{}, 0, newSectionErr("name", err)
	}
	typ, off, err := unpackUint16Msg(msg, off)
	if err != nil {
		return Resource{}, 0, newSectionErr("type", err)
	}
	if Type(typ) == TypeOPT {
		return Resource{}, 0, ErrUnsupportedExtension
	}
	cls, off, err := unpackUint16Msg(msg, off)
	if err != nil {
		return Resource{}, 0, newSectionErr("class", err)
	}
	ttl, off, err := unpackUint32Msg(msg, off)
	if err != nil {
		return Resource{}, 0, newSectionErr("ttl", err)
	}
	dataLen, off, err := unpackUint16Msg(msg, off)
	if err != nil {
		return Resource{}, 0, newSectionErr("length", err)
	}
	dataBound := off + int(dataLen)
	if dataBound > len(msg) {
		return Resource{}, 0, newSectionErr("length", ErrTruncatedInput)
	}

	data, off, err := unpackRData(Type(typ), msg, off, dataBound)
	if err != nil {
		return Resource{}, 0, newSectionErr("data", err)
	}
	if off != dataBound {
		return Resource{}, 0, newSectionErr("data", ErrRdataLengthMismatch)
	}

	rr := Resource{
		Name:  name,
		Type:  Type(typ),
		Class: Class(cls),
		TTL:   ttl,
		Data:  data,
	}
	return rr, off, nil
}
