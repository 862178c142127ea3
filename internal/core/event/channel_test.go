package event

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_ReaderSeesOnlyFutureEvents(t *testing.T) {
	t.Parallel()

	c := NewChannel[int](16)
	early := c.Register()
	c.Publish(1)
	c.Publish(2)

	late := c.Register()
	c.Publish(3)

	assert.Equal(t, []int{1, 2, 3}, c.Drain(early))
	assert.Equal(t, []int{3}, c.Drain(late))
	assert.Nil(t, c.Drain(early), "drain is not replayable")
}

func TestChannel_NoReadersRetainsNothing(t *testing.T) {
	t.Parallel()

	c := NewChannel[int](4)
	for i := range 10 {
		c.Publish(i)
	}
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(0), c.Dropped())

	r := c.Register()
	assert.Nil(t, c.Drain(r))
}

func TestChannel_ExactlyOncePerReaderAnyInterleaving(t *testing.T) {
	t.Parallel()

	const readers = 4
	const events = 500

	c := NewChannel[int](events)
	ids := make([]ReaderID, readers)
	for i := range ids {
		ids[i] = c.Register()
	}

	got := make([][]int, readers)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range events {
		c.Publish(i)
		r := rng.IntN(readers + 1)
		if r < readers {
			got[r] = append(got[r], c.Drain(ids[r])...)
		}
	}
	for r := range ids {
		got[r] = append(got[r], c.Drain(ids[r])...)
	}

	want := make([]int, events)
	for i := range want {
		want[i] = i
	}
	for r := range ids {
		assert.Equal(t, want, got[r], "reader %d", r)
		assert.Zero(t, c.Lost(ids[r]))
	}
	assert.Equal(t, 0, c.Len(), "fully consumed entries are compacted")
}

func TestChannel_ConcurrentPublishAndDrain(t *testing.T) {
	t.Parallel()

	const producers = 4
	const perProducer = 250

	c := NewChannel[string](producers * perProducer)
	a, b := c.Register(), c.Register()

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				c.Publish(fmt.Sprintf("%d-%d", p, i))
			}
		}()
	}

	var gotA []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for len(gotA) < producers*perProducer {
			gotA = append(gotA, c.Drain(a)...)
		}
	}()

	wg.Wait()
	<-done
	gotB := c.Drain(b)

	require.Len(t, gotA, producers*perProducer)
	assert.Equal(t, gotA, gotB, "both readers observe the same publication order")
}

func TestChannel_EvictionIsCountedAsLoss(t *testing.T) {
	t.Parallel()

	c := NewChannel[int](3)
	slow := c.Register()
	fast := c.Register()

	for i := range 5 {
		c.Publish(i)
		_ = c.Drain(fast)
	}

	assert.Equal(t, uint64(2), c.Dropped())
	assert.Equal(t, []int{2, 3, 4}, c.Drain(slow), "oldest events evicted first")
	assert.Equal(t, uint64(2), c.Lost(slow))
	assert.Zero(t, c.Lost(fast))
}

func TestChannel_UnregisterReleasesEntries(t *testing.T) {
	t.Parallel()

	c := NewChannel[int](8)
	keep := c.Register()
	gone := c.Register()

	c.Publish(1)
	c.Publish(2)
	_ = c.Drain(keep)
	assert.Equal(t, 2, c.Len(), "held for the reader that has not drained")

	c.Unregister(gone)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Drain(gone))
	assert.Equal(t, 1, c.Readers())
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: "a", want: Key('a')},
		{in: "Q", want: Key('q')},
		{in: "space", want: KeySpace},
		{in: "Escape", want: KeyEscape},
		{in: "hyper", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
