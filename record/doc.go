// Package record defines the values produced by biostream readers: the
// generic Record, the Phred+33 quality score, and the Decoder capability that
// turns raw sequence bytes into the caller's sequence type.
//
// # Decoders
//
// A reader is parameterized by the sequence type S and a Decoder[S]. Raw is
// the default and keeps the bytes uninterpreted:
//
//	r := fasta.NewReader(f, record.Raw{})
//	rec, err := r.Next() // rec.Seq is []byte
//
// Custom representations implement Decoder, or wrap a function:
//
//	upper := record.DecoderFunc[string](func(b []byte) (string, error) {
//	    return strings.ToUpper(string(b)), nil
//	})
//
// Decoders must not retain the slice passed to Decode; it is owned by the
// reader and overwritten by the next record.
package record
