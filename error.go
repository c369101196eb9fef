package dnsmsg

import "errors"

// Decode failures. All of them are recoverable by the caller; see
// [ErrorRCode] for mapping them to a response code.
var (
	// ErrTruncatedInput means the buffer ran out before a field or
	// section that the message declared.
	ErrTruncatedInput = errors.New("insufficient data for declared length")

	// ErrMalformedRdata means resource data did not match the shape of
	// its record type, or an embedded name was invalid.
	ErrMalformedRdata = errors.New("malformed resource data")

	// ErrRdataLengthMismatch means a structured rdata decoder consumed a
	// different number of bytes than the declared RDLENGTH.
	ErrRdataLengthMismatch = errors.New("resource data length mismatch")

	// ErrNameTooLong means a name exceeds 255 octets in wire form.
	ErrNameTooLong = errors.New("name too long")

	// ErrLabelTooLong means a label exceeds 63 octets.
	ErrLabelTooLong = errors.New("label too long")

	// ErrInvalidPointer means a compression pointer is truncated, points
	// forward, or points at itself.
	ErrInvalidPointer = errors.New("invalid compression pointer")

	// ErrPointerLoop means compression pointers revisit an offset.
	ErrPointerLoop = errors.New("compression pointer loop")

	// ErrUnsupportedExtension means the message carries an OPT record.
	// EDNS0 semantics are not modeled here.
	ErrUnsupportedExtension = errors.New("OPT record is not supported")

	// ErrCompressedSRV is returned for a compressed name in SRV resource
	// data, which RFC 2782 forbids.
	ErrCompressedSRV = errors.New("compressed name in SRV resource data")
)

// Encode failures.
var (
	// ErrCapacityExceeded means a fixed-size target buffer cannot hold
	// the serialized message. The growable encode path never returns it.
	ErrCapacityExceeded = errors.New("buffer is too small")
)

var (
	errZeroLabel          = errors.New("zero length label")
	errBadEscape          = errors.New("invalid escape sequence")
	errInvalidName        = errors.New("invalid wire format name")
	errReservedLabelBits  = errors.New("label prefix 0x40/0x80 is reserved")
	errReservedHeaderBit  = errors.New("reserved header bit is set")
	errNilRData           = errors.New("nil resource data")
	errRdataTooLong       = errors.New("resource data exceeds 65535 octets")
	errStringTooLong      = errors.New("character string exceeds 255 octets")
	errNotIPv4            = errors.New("A record address is not IPv4")
	errNotIPv6            = errors.New("AAAA record address is not IPv6")
	errTooManyQuestions   = errors.New("too many Questions to pack (>65535)")
	errTooManyAnswers     = errors.New("too many Answers to pack (>65535)")
	errTooManyAuthorities = errors.New("too many Authorities to pack (>65535)")
	errTooManyAdditionals = errors.New("too many Additionals to pack (>65535)")
)

type sectionErr struct {
	sec string
	err error
}

func (e *sectionErr) Error() string {
	return e.sec + ": " + e.err.Error()
}

func (e *sectionErr) Unwrap() error {
	return e.err
}

func newSectionErr(sec string, err error) error {
	return &sectionErr{sec: sec, err: err}
}

// rdataErr marks its cause as ErrMalformedRdata while keeping the cause
// reachable through errors.Is/As.
type rdataErr struct {
	err error
}

func (e *rdataErr) Error() string {
	return "malformed resource data: " + e.err.Error()
}

func (e *rdataErr) Unwrap() error {
	return e.err
}

func (e *rdataErr) Is(target error) bool {
	return target == ErrMalformedRdata
}

func newMalformedRdata(cause error) error {
	if cause == nil || errors.Is(cause, ErrMalformedRdata) {
		return cause
	}
	return &rdataErr{err: cause}
}

// ErrorRCode maps a decode error to the RCODE a server would put in its
// reply: NOTIMP for an unsupported extension, FORMERR for everything else.
// A nil error maps to NOERROR. This package never sends the reply itself.
func ErrorRCode(err error) RCode {
	switch {
	case err == nil:
		return RCodeSuccess
	case errors.Is(err, ErrUnsupportedExtension):
		return RCodeNotImplemented
	default:
		return RCodeFormatError
	}
}
