package dnsmsg

import (
	"net"
	"net/netip"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func Test_Pack_Unpack(t *testing.T) {
	r := require.New(t)

	name := "test.test."

	t.Run("unpack question", func(t *testing.T) {
		m := new(dns.Msg)
		m.SetQuestion(name, dns.TypeA)
		b, err := m.Pack()
		r.NoError(err)

		gotMsg, err := UnpackMsg(b)
		r.NoError(err)

		r.Len(gotMsg.Questions, 1)
		q := gotMsg.Questions[0]
		r.Equal(name, dns.Fqdn(q.Name.String()))
		r.Equal(ClassINET, q.Class)
		r.Equal(TypeA, q.Type)
		r.Empty(gotMsg.Answers)
		r.Empty(gotMsg.Authorities)
		r.Empty(gotMsg.Additionals)
	})

	t.Run("unpack and pack rr", func(t *testing.T) {
		rrs := []dns.RR{
			// data is binary
			&dns.A{A: net.IPv4bcast, Hdr: dns.RR_Header{Rrtype: dns.TypeA}},
			&dns.AAAA{AAAA: net.IPv6loopback, Hdr: dns.RR_Header{Rrtype: dns.TypeAAAA}},
			&dns.TXT{Txt: []string{"0000000000000000000000"}, Hdr: dns.RR_Header{Rrtype: dns.TypeTXT}},

			// data is <domain-name>
			&dns.PTR{Ptr: name, Hdr: dns.RR_Header{Rrtype: dns.TypePTR}},
			&dns.CNAME{Target: name, Hdr: dns.RR_Header{Rrtype: dns.TypeCNAME}},
			&dns.NS{Ns: name, Hdr: dns.RR_Header{Rrtype: dns.TypeNS}},

			// data contains <domain-name>
			&dns.MX{Mx: name, Hdr: dns.RR_Header{Rrtype: dns.TypeMX}},
			&dns.SOA{Ns: name, Mbox: name, Hdr: dns.RR_Header{Rrtype: dns.TypeSOA}},
			&dns.SRV{Target: name, Hdr: dns.RR_Header{Rrtype: dns.TypeSRV}},
		}
		for _, rr := range rrs {
			rr.Header().Name = name
			rr.Header().Class = dns.ClassINET
		}

		for _, wantRr := range rrs {
			wantRrStr := wantRr.String()

			for _, compression := range [...]bool{true, false} {
				m := new(dns.Msg)
				m.SetQuestion(name, dns.TypeA)
				m.Answer = append(m.Answer, wantRr, wantRr)
				m.Compress = compression

				msgBytes, err := m.Pack()
				r.NoError(err)

				// test unpack
				rawMsg, err := UnpackMsg(msgBytes)
				r.NoError(err)

				r.Len(rawMsg.Answers, 2)
				for _, rr := range rawMsg.Answers {
					r.Equal(name, dns.Fqdn(rr.Name.String()))
				}

				// test pack
				repacked := make([]byte, rawMsg.Len())
				n, err := rawMsg.Pack(repacked)
				r.NoError(err)
				r.Equal(rawMsg.Len(), n)

				m = new(dns.Msg)
				err = m.Unpack(repacked[:n])
				r.NoError(err)

				r.Len(m.Answer, 2)
				for _, gotRr := range m.Answer {
					r.Equal(wantRrStr, gotRr.String())
				}
			}
		}
	})

	t.Run("truncated", func(t *testing.T) {
		// A valid header declaring one question, with nothing after it.
		b := make([]byte, 12)
		putUint16(b[4:], 1)

		var m Msg
		err := m.Unpack(b)
		r.ErrorIs(err, ErrTruncatedInput)

		_, err = UnpackMsg(b[:8])
		r.ErrorIs(err, ErrTruncatedInput)
	})

	t.Run("unknown rtype is opaque", func(t *testing.T) {
		m := &Msg{
			Header: Header{ID: 42, Response: true},
			Answers: []Resource{{
				Name:  mustName(t, "x.example"),
				Type:  Type(65280), // private use
				Class: ClassINET,
				TTL:   300,
				Data:  RDataOpaque{Data: []byte{0xCA, 0xFE, 0xBA, 0xBE}},
			}},
		}
		b, err := m.AppendPack(nil)
		r.NoError(err)

		got, err := UnpackMsg(b)
		r.NoError(err)
		r.Equal(m, got)

		b2, err := got.AppendPack(nil)
		r.NoError(err)
		r.Equal(b, b2)
	})

	t.Run("OPT rejected", func(t *testing.T) {
		m := new(dns.Msg)
		m.SetQuestion(name, dns.TypeA)
		m.SetEdns0(1232, false)
		b, err := m.Pack()
		r.NoError(err)

		_, err = UnpackMsg(b)
		r.ErrorIs(err, ErrUnsupportedExtension)

		// Encoding one is refused as well.
		bad := &Msg{Additionals: []Resource{{Type: TypeOPT, Data: RDataOpaque{}}}}
		_, err = bad.AppendPack(nil)
		r.ErrorIs(err, ErrUnsupportedExtension)
	})

	t.Run("trailing bytes ignored", func(t *testing.T) {
		m := new(dns.Msg)
		m.SetQuestion(name, dns.TypeA)
		b, err := m.Pack()
		r.NoError(err)
		b = append(b, 0xFF, 0xFF, 0xFF)

		got, err := UnpackMsg(b)
		r.NoError(err)
		r.Len(got.Questions, 1)
	})
}

// The canonical A query for www.example.com from RFC 1035 section 4.
func TestUnpackCanonicalQuery(t *testing.T) {
	r := require.New(t)

	b := []byte{
		0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
		0x00, 0x01, 0x00, 0x01,
	}

	m, err := UnpackMsg(b)
	r.NoError(err)

	r.Equal(Header{ID: 1, RecursionDesired: true}, m.Header)
	r.Len(m.Questions, 1)
	q := m.Questions[0]
	r.Equal("www.example.com", q.Name.String())
	r.Equal(TypeA, q.Type)
	r.Equal(ClassINET, q.Class)
	r.Empty(m.Answers)
	r.Empty(m.Authorities)
	r.Empty(m.Additionals)
}

func TestMsgRoundTrip(t *testing.T) {
	r := require.New(t)

	owner := mustName(t, "host.example.com")
	m := &Msg{
		Header: Header{
			ID:                 0xBEEF,
			Response:           true,
			Authoritative:      true,
			RecursionDesired:   true,
			RecursionAvailable: true,
		},
		Questions: []Question{
			{Name: owner, Type: TypeANY, Class: ClassINET},
		},
		Answers: []Resource{
			{Name: owner, Type: TypeA, Class: ClassINET, TTL: 60,
				Data: RDataA{Addr: netip.MustParseAddr("192.0.2.1")}},
			{Name: owner, Type: TypeAAAA, Class: ClassINET, TTL: 60,
				Data: RDataAAAA{Addr: netip.MustParseAddr("2001:db8::1")}},
			{Name: owner, Type: TypeCNAME, Class: ClassINET, TTL: 60,
				Data: RDataName{Target: mustName(t, "alias.example.com")}},
			{Name: owner, Type: TypeMX, Class: ClassINET, TTL: 60,
				Data: RDataMX{Preference: 10, Exchange: mustName(t, "mx.example.com")}},
			{Name: owner, Type: TypeTXT, Class: ClassINET, TTL: 60,
				Data: RDataTXT{Strings: []string{"v=spf1 -all", "k=rsa"}}},
			{Name: owner, Type: TypeSRV, Class: ClassINET, TTL: 60,
				Data: RDataSRV{Priority: 1, Weight: 5, Port: 443, Target: mustName(t, "srv.example.com")}},
			{Name: owner, Type: TypeHINFO, Class: ClassINET, TTL: 60,
				Data: RDataHINFO{CPU: "AMD64", OS: "plan9"}},
			{Name: owner, Type: TypeCAA, Class: ClassINET, TTL: 60,
				Data: RDataCAA{Flags: 0, Tag: "issue", Value: []byte("ca.example.net")}},
		},
		Authorities: []Resource{
			{Name: mustName(t, "example.com"), Type: TypeSOA, Class: ClassINET, TTL: 3600,
				Data: RDataSOA{
					MName:  mustName(t, "ns1.example.com"),
					RName:  mustName(t, "hostmaster.example.com"),
					Serial: 1, Refresh: 2, Retry: 3, Expire: 4, Minimum: 5,
				}},
		},
		Additionals: []Resource{
			{Name: mustName(t, "srv.example.com"), Type: TypeA, Class: ClassINET, TTL: 60,
				Data: RDataA{Addr: netip.MustParseAddr("198.51.100.7")}},
		},
	}

	b, err := m.AppendPack(nil)
	r.NoError(err)
	r.Equal(m.Len(), len(b))

	got, err := UnpackMsg(b)
	r.NoError(err)
	r.Equal(m, got)

	// The same bytes must satisfy an independent decoder.
	var check dns.Msg
	r.NoError(check.Unpack(b))
	r.Len(check.Answer, len(m.Answers))
	r.Len(check.Ns, len(m.Authorities))
	r.Len(check.Extra, len(m.Additionals))
}

func TestMsgPackCapacity(t *testing.T) {
	r := require.New(t)

	m := &Msg{Questions: []Question{{
		Name: mustName(t, "example.com"), Type: TypeA, Class: ClassINET,
	}}}

	_, err := m.Pack(make([]byte, m.Len()-1))
	r.ErrorIs(err, ErrCapacityExceeded)

	n, err := m.Pack(make([]byte, m.Len()))
	r.NoError(err)
	r.Equal(m.Len(), n)
}

func TestMsgCopy(t *testing.T) {
	r := require.New(t)

	m := &Msg{
		Header:    Header{ID: 1},
		Questions: []Question{{Name: mustName(t, "a.example"), Type: TypeA, Class: ClassINET}},
		Answers: []Resource{{
			Name: mustName(t, "a.example"), Type: TypeA, Class: ClassINET, TTL: 1,
			Data: RDataA{Addr: netip.MustParseAddr("192.0.2.1")},
		}},
	}
	c := m.Copy()
	r.Equal(m, c)

	c.Questions[0].Name[1] = 'z'
	r.NotEqual(m.Questions[0].Name, c.Questions[0].Name)
}

func TestErrorRCode(t *testing.T) {
	r := require.New(t)

	r.Equal(RCodeSuccess, ErrorRCode(nil))
	r.Equal(RCodeFormatError, ErrorRCode(newSectionErr("header", ErrTruncatedInput)))
	r.Equal(RCodeFormatError, ErrorRCode(ErrNameTooLong))
	r.Equal(RCodeNotImplemented, ErrorRCode(newSectionErr("additionals", ErrUnsupportedExtension)))
}

func Benchmark_Msg(b *testing.B) {
	r := require.New(b)
	name := "test.test.test."
	rrs := []dns.RR{
		&dns.A{A: net.IPv4bcast, Hdr: dns.RR_Header{Rrtype: dns.TypeA}},
		&dns.AAAA{AAAA: net.IPv6loopback, Hdr: dns.RR_Header{Rrtype: dns.TypeAAAA}},
		&dns.SOA{Ns: name, Mbox: name, Hdr: dns.RR_Header{Rrtype: dns.TypeSOA}},
		&dns.PTR{Ptr: name, Hdr: dns.RR_Header{Rrtype: dns.TypePTR}},
		&dns.CNAME{Target: name, Hdr: dns.RR_Header{Rrtype: dns.TypeCNAME}},
		&dns.MX{Mx: name, Hdr: dns.RR_Header{Rrtype: dns.TypeMX}},
	}
	for _, v := range rrs {
		v.Header().Name = name
	}

	m := new(dns.Msg)
	m.Answer = rrs
	m.Compress = true
	msgBin, err := m.Pack()
	r.NoError(err)

	b.ReportAllocs()
	b.ResetTimer()

	b.Run("Msg Unpack", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var rm Msg
			if err := rm.Unpack(msgBin); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("dns.Msg Unpack", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			m := new(dns.Msg)
			if err := m.Unpack(msgBin); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Msg Pack", func(b *testing.B) {
		var rm Msg
		if err := rm.Unpack(msgBin); err != nil {
			b.Fatal(err)
		}
		buf := make([]byte, rm.Len())
		for i := 0; i < b.N; i++ {
			if _, err := rm.Pack(buf); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("dns.Msg Pack", func(b *testing.B) {
		m := new(dns.Msg)
		if err := m.Unpack(msgBin); err != nil {
			b.Fatal(err)
		}
		buf := make([]byte, 0, 4096)
		for i := 0; i < b.N; i++ {
			if _, err := m.PackBuffer(buf); err != nil {
				b.Fatal(err)
			}
		}
	})
}
