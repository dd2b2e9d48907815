package connectivity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartsOffline(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.Online())
	assert.True(t, tr.Status().CheckedAt.IsZero())
}

func TestTracker_Set(t *testing.T) {
	tr := NewTracker()
	tr.Set(true)
	assert.True(t, tr.Online())
	assert.False(t, tr.Status().CheckedAt.IsZero())

	tr.Set(false)
	assert.False(t, tr.Online())
}

func TestTracker_SubscribeReceivesChanges(t *testing.T) {
	tr := NewTracker()
	ch, cancel := tr.Subscribe()
	defer cancel()

	tr.Set(true)
	require.Equal(t, true, <-ch)

	// Same value again is not a change.
	tr.Set(true)
	select {
	case v := <-ch:
		t.Fatalf("unexpected notification %v", v)
	default:
	}

	tr.Set(false)
	assert.Equal(t, false, <-ch)
}

func TestTracker_FirstWriteNotifiesEvenWhenOffline(t *testing.T) {
	tr := NewTracker()
	ch, cancel := tr.Subscribe()
	defer cancel()

	tr.Set(false)
	assert.Equal(t, false, <-ch)
}

func TestTracker_SlowSubscriberSeesLatest(t *testing.T) {
	tr := NewTracker()
	ch, cancel := tr.Subscribe()
	defer cancel()

	tr.Set(true)
	tr.Set(false)
	tr.Set(true)

	assert.Equal(t, true, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("expected a single buffered value, got extra %v", v)
	default:
	}
}

func TestTracker_CancelClosesChannel(t *testing.T) {
	tr := NewTracker()
	ch, cancel := tr.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// Writes after cancel must not panic on the closed channel.
	tr.Set(true)
}

func TestTracker_ConcurrentWriters(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Set(i%2 == 0)
			_ = tr.Online()
		}(i)
	}
	wg.Wait()
	assert.False(t, tr.Status().CheckedAt.IsZero())
}
