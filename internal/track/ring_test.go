package track

import "testing"

func TestRingFIFOAcrossGrowth(t *testing.T) {
	r := newRing[int](4)
	next := 0
	for i := 0; i < 3; i++ {
		r.PushBack(i)
	}
	// Wrap the head before growing.
	if v := r.PopFront(); v != next {
		t.Fatalf("PopFront() = %d, expected %d", v, next)
	}
	next++
	for i := 3; i < 20; i++ {
		r.PushBack(i)
	}

	if r.Len() != 19 {
		t.Fatalf("Len() = %d, expected 19", r.Len())
	}
	if r.Back() != 19 {
		t.Errorf("Back() = %d, expected 19", r.Back())
	}
	for r.Len() > 0 {
		if v := r.PopFront(); v != next {
			t.Fatalf("PopFront() = %d, expected %d", v, next)
		}
		next++
	}
}

func TestZeroRingGrows(t *testing.T) {
	var r ring[string]
	r.PushBack("a")
	if r.Front() != "a" {
		t.Errorf("Front() = %q, expected a", r.Front())
	}
}
