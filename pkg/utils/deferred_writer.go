package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter holds writes in memory until Flush is called. After the
// first Flush, writes pass straight through to the flushed writer.
// Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer
}

// Write stores data in the internal buffer, or forwards it once flushed.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.out != nil {
		return d.out.Write(p)
	}
	return d.buf.Write(p)
}

// Flush writes all buffered data to w, clears the buffer and forwards later
// writes to w.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out = w
	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(w)
	return err
}

// Buffered reports the number of bytes waiting for Flush.
func (d *DeferredWriter) Buffered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}
