package card

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamRead(t *testing.T) {
	tests := []struct {
		name string
		card string
		n    int
		want string
	}{
		{"single byte", "A", 5, "AAAAA"},
		{"two bytes", "BC", 5, "BCBCB"},
		{"request shorter than card", "magician", 3, "mag"},
		{"exact multiple", "ab", 6, "ababab"},
		{"zero length request", "ab", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			s.SetCard([]byte(tc.card))

			d, err := s.OpenData()
			if err != nil {
				t.Fatal(err)
			}
			defer d.Close()

			p := make([]byte, tc.n)
			n, err := d.Read(p)
			assert.NoError(t, err)
			assert.Equal(t, tc.n, n)
			assert.Equal(t, tc.want, string(p))
		})
	}
}

func TestStreamReadEmpty(t *testing.T) {
	s := NewStore()

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	n, err := d.Read(make([]byte, 10))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamRestartsOnNewCard(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("A"))

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	p := make([]byte, 5)
	d.Read(p)
	assert.Equal(t, "AAAAA", string(p))

	// a new card takes over mid-stream, no stale bytes from the old one
	s.SetCard([]byte("BC"))
	d.Read(p)
	assert.Equal(t, "BCBCB", string(p))
}

func TestStreamReadIsStateless(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("AB"))

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	// every call restarts the cycle, the second read does not continue
	// where the first left off
	p := make([]byte, 3)
	d.Read(p)
	assert.Equal(t, "ABA", string(p))
	d.Read(p)
	assert.Equal(t, "ABA", string(p))

	n, err := d.ReadAt(p, 42)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "ABA", string(p))
}

func TestStreamExclusive(t *testing.T) {
	s := NewStore()

	d, err := s.OpenData()
	assert.NoError(t, err)

	_, err = s.OpenData()
	assert.ErrorIs(t, err, ErrBusy)

	d.Close()
	d2, err := s.OpenData()
	assert.NoError(t, err)
	d2.Close()
}

func TestStreamWriteIsNoop(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("four of spades"))

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	n, err := d.Write([]byte("something else entirely"))
	assert.NoError(t, err)
	assert.Equal(t, 23, n)

	// the card is picked through the control endpoint only
	assert.Equal(t, []byte("four of spades"), s.Card())
}

func TestStreamPos(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("x"))

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	d.Read(make([]byte, 10))
	d.Read(make([]byte, 5))
	assert.Equal(t, int64(15), d.Pos())
}

func TestStreamCopyN(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("BC"))

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	var buf bytes.Buffer
	n, err := d.CopyN(&buf, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "BCBCB", buf.String())
}

func TestStreamCopyNLargerThanChunk(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("abc"))

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	// spans multiple internal chunks, the cycle must not reset between them
	total := int64(100*1024 + 1)
	var buf bytes.Buffer
	n, err := d.CopyN(&buf, total)
	assert.NoError(t, err)
	assert.Equal(t, total, n)

	out := buf.Bytes()
	for i := range out {
		if out[i] != "abc"[i%3] {
			t.Fatalf("byte %d: got %q, want %q", i, out[i], "abc"[i%3])
		}
	}
}

func TestStreamCopyNEmpty(t *testing.T) {
	s := NewStore()

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	var buf bytes.Buffer
	n, err := d.CopyN(&buf, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestStreamCopyNFault(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("A"))

	d, err := s.OpenData()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	w := &faultyWriter{limit: 3}
	n, err := d.CopyN(w, 10)
	assert.ErrorIs(t, err, ErrAccessFault)
	assert.Equal(t, int64(3), n)
}

type faultyWriter struct {
	limit   int
	written int
}

func (w *faultyWriter) Write(p []byte) (int, error) {
	room := w.limit - w.written
	if len(p) <= room {
		w.written += len(p)
		return len(p), nil
	}
	w.written = w.limit
	return room, errors.New("bad memory region")
}
