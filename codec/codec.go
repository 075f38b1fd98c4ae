// Package codec provides serializers for storing typed values in the
// byte-oriented cache. Each codec carries a wire-format flag that the
// typed client stamps into the entry's flags field, so a reader can tell
// how stored bytes were produced before decoding them.
package codec

// Wire-format flags. The cache treats flags as opaque; these constants
// are a client-side convention.
const (
	FlagRaw     uint32 = 0 // raw bytes / UTF-8 string
	FlagJSON    uint32 = 1
	FlagMsgpack uint32 = 2
	FlagCBOR    uint32 = 3
)

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)

	// Flag identifies the wire format; stored in entry flags.
	Flag() uint32
}
