package card

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// Control is a handle on the control endpoint, where the card gets
// picked. Reads are one-shot: a handle yields the stored card once and
// then reports end of data until a fresh handle is opened.
type Control struct {
	store *Store
	pos   int64
}

func (s *Store) OpenControl() *Control {
	return &Control{store: s}
}

// Write replaces the stored card with p and returns the number of
// bytes accepted, which is less than len(p) when the card gets
// truncated at capacity.
func (c *Control) Write(p []byte) (int, error) {
	n := c.store.SetCard(p)
	log.Debugf("card set to %q (%d bytes)", c.store.Card(), n)
	return n, nil
}

// WriteFrom reads up to MaxSize bytes from r and stores them as the
// card. A source that fails mid-read surfaces ErrAccessFault and
// leaves the previous card in place.
func (c *Control) WriteFrom(r io.Reader) (int, error) {
	buf := make([]byte, MaxSize)
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrAccessFault, err)
		}
	}
	return c.Write(buf[:total])
}

// Read copies the stored card into p. The first call yields the card,
// subsequent calls return io.EOF until the handle is reopened.
func (c *Control) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := c.ReadAt(p, c.pos)
	if n == 0 {
		return 0, io.EOF
	}
	c.pos += int64(n)
	return n, nil
}

// ReadAt is the offset-explicit variant the filesystem layer uses: any
// offset past the start of the card reports end of data.
func (c *Control) ReadAt(p []byte, off int64) int {
	if off > 0 {
		return 0
	}
	return copy(p, c.store.Card())
}
