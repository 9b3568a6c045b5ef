package rtlsdr

import (
	"io"
)

// FileSource is a deterministic offline SampleSource: it replays a raw
// interleaved-u8-IQ file exactly as a real device would have produced
// it, block by block. Useful for the test suite and for post-mortem
// replay of a captured signal.
type FileSource struct {
	r io.Reader
}

// NewFileSource wraps r as a SampleSource.
func NewFileSource(r io.Reader) *FileSource {
	return &FileSource{r: r}
}

// Read fills buf from the underlying file, returning io.EOF once
// exhausted, matching io.Reader semantics exactly (the pipeline caller
// treats EOF as "no more samples", not an error condition).
func (f *FileSource) Read(buf []byte) (int, error) {
	return f.r.Read(buf)
}
