package logging

import (
	"bytes"
	"io"
)

// PrefixWriter decorates every line written through it with a fixed
// marker before passing it to the underlying writer. Partial lines are
// held back until their newline arrives so the marker never lands in the
// middle of a line.
type PrefixWriter struct {
	prefix  []byte
	out     io.Writer
	pending []byte
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, out io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), out: out}
}

// Write implements io.Writer. It always reports the full input length as
// consumed; incomplete trailing lines are buffered for the next call.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.pending = append(pw.pending, p...)

	for {
		nl := bytes.IndexByte(pw.pending, '\n')
		if nl < 0 {
			break
		}
		line := pw.pending[:nl+1]
		if _, err := pw.out.Write(pw.prefix); err != nil {
			return len(p), err
		}
		if _, err := pw.out.Write(line); err != nil {
			return len(p), err
		}
		pw.pending = pw.pending[nl+1:]
	}

	return len(p), nil
}
