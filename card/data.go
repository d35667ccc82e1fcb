package card

import (
	"fmt"
	"io"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Data is an exclusive handle on the stream endpoint. It replays the
// current card cyclically for as long as the caller keeps reading,
// like /dev/zero with a better sense of showmanship.
type Data struct {
	store *Store
	pos   atomic.Int64
}

// OpenData claims the stream endpoint. At most one handle can be open
// at a time; everyone else gets ErrBusy until Close.
func (s *Store) OpenData() (*Data, error) {
	if err := s.TryAcquire(); err != nil {
		return nil, err
	}
	return &Data{store: s}, nil
}

// Close releases the endpoint for the next open.
func (d *Data) Close() error {
	d.store.Release()
	return nil
}

// Read fills all of p by repeating the current card. Every call
// restarts the cycle from the card's first byte, so a freshly picked
// card shows up in full on the very next read. It reports io.EOF only
// when no card has been set.
func (d *Data) Read(p []byte) (int, error) {
	c := d.store.Card()
	if len(c) == 0 {
		return 0, io.EOF
	}
	for i := range p {
		p[i] = c[i%len(c)]
	}
	d.pos.Add(int64(len(p)))
	return len(p), nil
}

// ReadAt behaves exactly like Read. The offset is accepted for the
// benefit of positional readers but never selects content: the stream
// has no position, only a card and a request length.
func (d *Data) ReadAt(p []byte, off int64) (int, error) {
	return d.Read(p)
}

// Write is not supported on the stream endpoint. It logs an advisory
// and still claims the full length as consumed, so permissive callers
// keep working. The card itself is picked through the control
// endpoint.
func (d *Data) Write(p []byte) (int, error) {
	log.Warn("This operation is not supported. Did you mean to write to the card file?")
	return len(p), nil
}

// CopyN streams n cyclic bytes into w. A sink that fails mid-copy
// surfaces ErrAccessFault along with the count of bytes transferred
// before the fault. A zero length card copies nothing.
func (d *Data) CopyN(w io.Writer, n int64) (int64, error) {
	c := d.store.Card()
	if len(c) == 0 || n <= 0 {
		return 0, nil
	}

	buf := make([]byte, 32*1024)
	var written int64
	for written < n {
		m := n - written
		if m > int64(len(buf)) {
			m = int64(len(buf))
		}
		for j := int64(0); j < m; j++ {
			buf[j] = c[(written+j)%int64(len(c))]
		}
		k, err := w.Write(buf[:m])
		written += int64(k)
		d.pos.Add(int64(k))
		if err != nil {
			return written, fmt.Errorf("%w: %v", ErrAccessFault, err)
		}
	}
	return written, nil
}

// Pos reports the total number of bytes served through this handle.
// Bookkeeping only; it never influences what the stream produces.
func (d *Data) Pos() int64 {
	return d.pos.Load()
}
