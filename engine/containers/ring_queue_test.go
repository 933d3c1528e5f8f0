package containers

import (
	"errors"
	"slices"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	if v, _ := rq.Peek(); v != 1 {
		t.Fatalf("expected 1 at the front, got %d", v)
	}
	if v, _ := rq.Dequeue(); v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}
	_ = rq.Enqueue(4)
	if got := rq.Values(); !slices.Equal(got, []int{2, 3, 4}) {
		t.Fatalf("expected [2 3 4], got %v", got)
	}
}

func TestRingQueuePushDropsOldest(t *testing.T) {
	rq := NewRingQueue[float64](2)
	rq.Push(1)
	rq.Push(2)
	rq.Push(3)
	if rq.Len() != 2 || !rq.IsFull() {
		t.Fatalf("expected a full queue of 2, got %d", rq.Len())
	}
	if got := rq.Values(); !slices.Equal(got, []float64{2, 3}) {
		t.Fatalf("expected [2 3], got %v", got)
	}

	empty := NewRingQueue[int](0)
	empty.Push(1)
	if empty.Len() != 0 {
		t.Fatalf("zero capacity queue must stay empty")
	}
}
