// Package dnsmsg implements the DNS wire format (RFC 1035 section 4).
//
// It converts a raw message buffer into a [Msg] and back. Decoding follows
// name compression pointers; encoding never emits them. EDNS0 (OPT records)
// is not supported and is rejected on both paths.
//
// All decoded values are plain, caller-owned data. The package keeps no
// state between calls, so independent messages can be encoded and decoded
// concurrently.
package dnsmsg
