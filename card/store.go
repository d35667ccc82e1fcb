package card

import (
	"errors"
	"sync/atomic"
)

// MaxSize is the capacity of the card buffer. One byte is reserved for
// the implicit terminator, so a card holds at most MaxSize-1 bytes.
const MaxSize = 1024

var (
	// ErrBusy is returned when the stream endpoint is already held by
	// another handle.
	ErrBusy = errors.New("device busy")

	// ErrAccessFault is returned when a caller supplied buffer could not
	// be read from or written to.
	ErrAccessFault = errors.New("buffer access fault")
)

// Store is the single source of truth for the current card and for the
// stream endpoint's exclusivity. The card is kept as an immutable
// snapshot that writers swap in whole, so a reader racing a write sees
// either the old card or the new one, never a torn mix.
type Store struct {
	card atomic.Value // []byte, always a complete snapshot
	held atomic.Bool
}

func NewStore() *Store {
	s := &Store{}
	s.card.Store([]byte(nil))
	return s
}

// SetCard stores a copy of p as the current card, silently truncating
// at MaxSize-1 bytes. It returns the number of bytes accepted.
func (s *Store) SetCard(p []byte) int {
	n := len(p)
	if n >= MaxSize {
		n = MaxSize - 1
	}
	c := make([]byte, n)
	copy(c, p[:n])
	s.card.Store(c)
	return n
}

// Card returns the current card. The returned slice is a snapshot and
// must not be modified. A zero length card means no card has been set.
func (s *Store) Card() []byte {
	c, _ := s.card.Load().([]byte)
	return c
}

// Len returns the length of the current card.
func (s *Store) Len() int {
	return len(s.Card())
}

// TryAcquire claims the stream endpoint. Concurrent callers race on a
// single compare-and-swap, so at most one of them wins; the rest get
// ErrBusy until the winner calls Release.
func (s *Store) TryAcquire() error {
	if !s.held.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

// Release marks the stream endpoint free again.
func (s *Store) Release() {
	s.held.Store(false)
}
