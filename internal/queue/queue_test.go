package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueue_FIFOOrder(t *testing.T) {
	q := New()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	for _, want := range []int64{1, 2, 3} {
		got, ok := q.Dequeue()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := New()
	result := make(chan int64, 1)
	go func() {
		id, ok := q.Dequeue()
		require.True(t, ok)
		result <- id
	}()

	// Give the consumer goroutine a chance to block in Dequeue before we
	// enqueue, so this actually exercises the cond.Wait() path rather than
	// racing a value that was already there.
	time.Sleep(10 * time.Millisecond)
	q.Enqueue(42)

	select {
	case id := <-result:
		require.Equal(t, int64(42), id)
	case <-time.After(time.Second):
		t.Fatal("Dequeue never returned the enqueued id")
	}
}

func TestQueue_Len(t *testing.T) {
	q := New()
	require.Equal(t, 0, q.Len())
	q.Enqueue(1)
	q.Enqueue(2)
	require.Equal(t, 2, q.Len())
	_, _ = q.Dequeue()
	require.Equal(t, 1, q.Len())
}

func TestQueue_CloseDrainsExistingItemsThenReportsClosed(t *testing.T) {
	q := New()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Close()

	id, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, int64(1), id)

	id, ok = q.Dequeue()
	require.True(t, ok)
	require.Equal(t, int64(2), id)

	_, ok = q.Dequeue()
	require.False(t, ok, "Dequeue must report closed once drained")
}

func TestQueue_EnqueueAfterCloseIsNoOp(t *testing.T) {
	q := New()
	q.Close()
	q.Enqueue(1)
	require.Equal(t, 0, q.Len())
}

func TestQueue_CloseWakesBlockedConsumer(t *testing.T) {
	q := New()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Dequeue()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Close never woke the blocked consumer")
	}
}
