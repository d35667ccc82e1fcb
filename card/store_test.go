package card

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetCard(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		accepted int
		stored   []byte
	}{
		{
			"short value",
			[]byte("ace of spades"),
			13,
			[]byte("ace of spades"),
		},
		{
			"empty value",
			nil,
			0,
			[]byte{},
		},
		{
			"exactly at capacity",
			bytes.Repeat([]byte{'x'}, MaxSize-1),
			MaxSize - 1,
			bytes.Repeat([]byte{'x'}, MaxSize-1),
		},
		{
			"over capacity",
			bytes.Repeat([]byte{'y'}, MaxSize+100),
			MaxSize - 1,
			bytes.Repeat([]byte{'y'}, MaxSize-1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			n := s.SetCard(tc.input)
			assert.Equal(t, tc.accepted, n)
			assert.Equal(t, tc.stored, s.Card())
			assert.Equal(t, tc.accepted, s.Len())
		})
	}
}

func TestSetCardOverwrites(t *testing.T) {
	s := NewStore()
	s.SetCard([]byte("A"))
	s.SetCard([]byte("BC"))
	assert.Equal(t, []byte("BC"), s.Card())
}

func TestCardIsSnapshot(t *testing.T) {
	s := NewStore()
	input := []byte("queen of hearts")
	s.SetCard(input)

	// mutating the caller's slice afterwards must not leak into the store
	input[0] = 'Q'
	assert.Equal(t, []byte("queen of hearts"), s.Card())
}

func TestTryAcquire(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.TryAcquire())
	assert.ErrorIs(t, s.TryAcquire(), ErrBusy)

	s.Release()
	assert.NoError(t, s.TryAcquire())
}

func TestTryAcquireConcurrent(t *testing.T) {
	s := NewStore()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.TryAcquire() == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
