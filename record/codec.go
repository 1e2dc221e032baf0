package record

// Decoder converts raw sequence bytes into a sequence of type S.
// Decode must not retain src.
type Decoder[S any] interface {
	Decode(src []byte) (S, error)
}

// Encoder appends the wire form of a sequence to dst.
type Encoder[S any] interface {
	Encode(dst []byte, seq S) []byte
}

// Codec combines both directions; readers need a Decoder, writers an Encoder.
type Codec[S any] interface {
	Decoder[S]
	Encoder[S]
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc[S any] func(src []byte) (S, error)

// Decode calls f(src).
func (f DecoderFunc[S]) Decode(src []byte) (S, error) {
	return f(src)
}

// Raw keeps sequences as uninterpreted bytes. Decode returns an owned copy.
type Raw struct{}

var _ Codec[[]byte] = Raw{}

// Decode copies src. It never fails.
func (Raw) Decode(src []byte) ([]byte, error) {
	out := make([]byte, len(src))
	copy(out, src)

	return out, nil
}

// Encode appends seq to dst.
func (Raw) Encode(dst []byte, seq []byte) []byte {
	return append(dst, seq...)
}

// Text keeps sequences as strings.
type Text struct{}

var _ Codec[string] = Text{}

// Decode converts src to a string. It never fails.
func (Text) Decode(src []byte) (string, error) {
	return string(src), nil
}

// Encode appends seq to dst.
func (Text) Encode(dst []byte, seq string) []byte {
	return append(dst, seq...)
}
