package dnsmsg

import "net/netip"

// RData is the type-specific payload of a resource record. It is a closed
// set: one concrete type per modeled record shape, plus [RDataOpaque] for
// every type without a modeled shape. Which concrete type a decoded
// [Resource] carries is keyed by its Type field.
type RData interface {
	packLen() int
	pack(msg []byte, off int) (int, error)
	clone() RData
}

// RDataA is the payload of an A record: one IPv4 address.
type RDataA struct {
	Addr netip.Addr
}

func (d RDataA) packLen() int { return 4 }

func (d RDataA) pack(msg []byte, off int) (int, error) {
	if !d.Addr.Is4() && !d.Addr.Is4In6() {
		return off, errNotIPv4
	}
	a := d.Addr.As4()
	return packBytes(msg, off, a[:])
}

func (d RDataA) clone() RData { return d }

// RDataAAAA is the payload of an AAAA record: one IPv6 address.
type RDataAAAA struct {
	Addr netip.Addr
}

func (d RDataAAAA) packLen() int { return 16 }

func (d RDataAAAA) pack(msg []byte, off int) (int, error) {
	if !d.Addr.IsValid() {
		return off, errNotIPv6
	}
	a := d.Addr.As16()
	return packBytes(msg, off, a[:])
}

func (d RDataAAAA) clone() RData { return d }

// RDataName is the payload of the single-name record types
// (NS, CNAME, PTR, DNAME).
type RDataName struct {
	Target Name
}

func (d RDataName) packLen() int { return d.Target.PackLen() }

func (d RDataName) pack(msg []byte, off int) (int, error) {
	return d.Target.pack(msg, off)
}

func (d RDataName) clone() RData { return RDataName{Target: d.Target.Copy()} }

// RDataMX is the payload of an MX record.
type RDataMX struct {
	Preference uint16
	Exchange   Name
}

func (d RDataMX) packLen() int { return 2 + d.Exchange.PackLen() }

func (d RDataMX) pack(msg []byte, off int) (int, error) {
	off, err := packUint16(msg, off, d.Preference)
	if err != nil {
		return off, err
	}
	return d.Exchange.pack(msg, off)
}

func (d RDataMX) clone() RData {
	return RDataMX{Preference: d.Preference, Exchange: d.Exchange.Copy()}
}

// RDataSOA is the payload of an SOA record.
type RDataSOA struct {
	MName   Name
	RName   Name
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (d RDataSOA) packLen() int {
	return d.MName.PackLen() + d.RName.PackLen() + 20
}

func (d RDataSOA) pack(msg []byte, off int) (int, error) {
	off, err := d.MName.pack(msg, off)
	if err != nil {
		return off, err
	}
	off, err = d.RName.pack(msg, off)
	if err != nil {
		return off, err
	}
	for _, v := range [...]uint32{d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum} {
		off, err = packUint32(msg, off, v)
		if err != nil {
			return off, err
		}
	}
	return off, nil
}

func (d RDataSOA) clone() RData {
	c := d
	c.MName = d.MName.Copy()
	c.RName = d.RName.Copy()
	return c
}

// RDataTXT is the payload of a TXT record: one or more character strings
// of up to 255 octets each.
type RDataTXT struct {
	Strings []string
}

func (d RDataTXT) packLen() int {
	l := 0
	for _, s := range d.Strings {
		l += 1 + len(s)
	}
	return l
}

func (d RDataTXT) pack(msg []byte, off int) (int, error) {
	var err error
	for _, s := range d.Strings {
		off, err = packCharString(msg, off, s)
		if err != nil {
			return off, err
		}
	}
	return off, nil
}

func (d RDataTXT) clone() RData {
	if d.Strings == nil {
		return d
	}
	c := make([]string, len(d.Strings))
	copy(c, d.Strings)
	return RDataTXT{Strings: c}
}

// RDataSRV is the payload of an SRV record. Its target is never
// compressed on the wire (RFC 2782).
type RDataSRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   Name
}

func (d RDataSRV) packLen() int { return 6 + d.Target.PackLen() }

func (d RDataSRV) pack(msg []byte, off int) (int, error) {
	var err error
	for _, v := range [...]uint16{d.Priority, d.Weight, d.Port} {
		off, err = packUint16(msg, off, v)
		if err != nil {
			return off, err
		}
	}
	return d.Target.pack(msg, off)
}

func (d RDataSRV) clone() RData {
	c := d
	c.Target = d.Target.Copy()
	return c
}

// RDataHINFO is the payload of a HINFO record.
type RDataHINFO struct {
	CPU string
	OS  string
}

func (d RDataHINFO) packLen() int { return 2 + len(d.CPU) + len(d.OS) }

func (d RDataHINFO) pack(msg []byte, off int) (int, error) {
	off, err := packCharString(msg, off, d.CPU)
	if err != nil {
		return off, err
	}
	return packCharString(msg, off, d.OS)
}

func (d RDataHINFO) clone() RData { return d }

// RDataCAA is the payload of a CAA record (RFC 8659).
type RDataCAA struct {
	Flags uint8
	Tag   string
	Value []byte
}

func (d RDataCAA) packLen() int { return 2 + len(d.Tag) + len(d.Value) }

func (d RDataCAA) pack(msg []byte, off int) (int, error) {
	off, err := packByte(msg, off, d.Flags)
	if err != nil {
		return off, err
	}
	off, err = packCharString(msg, off, d.Tag)
	if err != nil {
		return off, err
	}
	return packBytes(msg, off, d.Value)
}

func (d RDataCAA) clone() RData {
	c := d
	c.Value = append([]byte(nil), d.Value...)
	return c
}

// RDataOpaque holds the verbatim payload of any record type without a
// modeled shape. It re-encodes byte for byte, which keeps unrecognized
// record types flowing through intact.
type RDataOpaque struct {
	Data []byte
}

func (d RDataOpaque) packLen() int { return len(d.Data) }

func (d RDataOpaque) pack(msg []byte, off int) (int, error) {
	return packBytes(msg, off, d.Data)
}

func (d RDataOpaque) clone() RData {
	return RDataOpaque{Data: append([]byte(nil), d.Data...)}
}

func packCharString(msg []byte, off int, s string) (int, error) {
	if len(s) > 255 {
		return off, errStringTooLong
	}
	off, err := packByte(msg, off, byte(len(s)))
	if err != nil {
		return off, err
	}
	return packBytes(msg, off, []byte(s))
}

func unpackCharString(msg []byte, off int) (string, int, error) {
	if off >= len(msg) {
		return "", 0, ErrTruncatedInput
	}
	end := off + 1 + int(msg[off])
	if end > len(msg) {
		return "", 0, ErrTruncatedInput
	}
	return string(msg[off+1 : end]), end, nil
}

// unpackRData decodes the rdata of one record. msg is the whole message
// buffer so embedded names can follow compression pointers backward;
// the rdata itself occupies msg[off:bound]. Decoders for structured
// shapes report the offset they stopped at, which the caller checks
// against bound.
func unpackRData(typ Type, msg []byte, off, bound int) (RData, int, error) {
	data := msg[off:bound]
	switch typ {
	case TypeA:
		if len(data) != 4 {
			return nil, off, ErrMalformedRdata
		}
		return RDataA{Addr: netip.AddrFrom4([4]byte(data))}, bound, nil

	case TypeAAAA:
		if len(data) != 16 {
			return nil, off, ErrMalformedRdata
		}
		return RDataAAAA{Addr: netip.AddrFrom16([16]byte(data))}, bound, nil

	case TypeNS, TypeCNAME, TypePTR, TypeDNAME:
		var b NameBuilder
		off, err := b.unpack(msg[:bound], off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		return RDataName{Target: b.ToName()}, off, nil

	case TypeMX:
		pref, off, err := unpackUint16Msg(msg[:bound], off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		var b NameBuilder
		off, err = b.unpack(msg[:bound], off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		return RDataMX{Preference: pref, Exchange: b.ToName()}, off, nil

	case TypeSOA:
		var mname, rname NameBuilder
		off, err := mname.unpack(msg[:bound], off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		off, err = rname.unpack(msg[:bound], off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		d := RDataSOA{MName: mname.ToName(), RName: rname.ToName()}
		for _, p := range [...]*uint32{&d.Serial, &d.Refresh, &d.Retry, &d.Expire, &d.Minimum} {
			*p, off, err = unpackUint32Msg(msg[:bound], off)
			if err != nil {
				return nil, off, newMalformedRdata(err)
			}
		}
		return d, off, nil

	case TypeTXT:
		var strs []string
		for off < bound {
			var s string
			var err error
			s, off, err = unpackCharString(msg[:bound], off)
			if err != nil {
				return nil, off, newMalformedRdata(err)
			}
			strs = append(strs, s)
		}
		return RDataTXT{Strings: strs}, off, nil

	case TypeHINFO:
		cpu, off, err := unpackCharString(msg[:bound], off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		osName, off, err := unpackCharString(msg[:bound], off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		return RDataHINFO{CPU: cpu, OS: osName}, off, nil

	case TypeSRV:
		d := RDataSRV{}
		var err error
		for _, p := range [...]*uint16{&d.Priority, &d.Weight, &d.Port} {
			*p, off, err = unpackUint16Msg(msg[:bound], off)
			if err != nil {
				return nil, off, newMalformedRdata(err)
			}
		}
		var b NameBuilder
		off, err = b.unpackMsg(msg[:bound], off, false)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		d.Target = b.ToName()
		return d, off, nil

	case TypeCAA:
		if len(data) < 2 {
			return nil, off, ErrMalformedRdata
		}
		tagEnd := 2 + int(data[1])
		if tagEnd > len(data) {
			return nil, off, ErrMalformedRdata
		}
		d := RDataCAA{
			Flags: data[0],
			Tag:   string(data[2:tagEnd]),
			Value: append([]byte(nil), data[tagEnd:]...),
		}
		return d, bound, nil

	default:
		raw, off, err := unpackBytesMsg(msg[:bound], off, bound-off)
		if err != nil {
			return nil, off, newMalformedRdata(err)
		}
		return RDataOpaque{Data: raw}, off, nil
	}
}
