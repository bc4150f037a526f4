package codec

import (
	"compress/gzip"
	"io"
)

// GzipCodec compresses a whole payload onto the bound writer and
// decompresses one from the bound reader.
type GzipCodec struct {
	r io.Reader
	w io.Writer
}

func NewGzipCodec() *GzipCodec {
	return &GzipCodec{}
}

func (gc *GzipCodec) BindR(r io.Reader) {
	gc.r = r
}

func (gc *GzipCodec) BindW(w io.Writer) {
	gc.w = w
}

// Encode returns the compressed size.
func (gc *GzipCodec) Encode(b []byte) (int64, error) {
	cw := NewCountWriter(gc.w)
	w := gzip.NewWriter(cw)
	if _, err := w.Write(b); err != nil {
		w.Close()
		return cw.Count(), err
	}
	// the footer is only flushed by Close
	err := w.Close()
	return cw.Count(), err
}

func (gc *GzipCodec) Decode() ([]byte, error) {
	r, err := gzip.NewReader(gc.r)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
