package track

// ring is a growable FIFO used for the active sequence. Pushing and popping
// do not allocate once the buffer is large enough.
type ring[T any] struct {
	buf  []T
	head int
	n    int
}

func newRing[T any](capacity int) ring[T] {
	if capacity < 4 {
		capacity = 4
	}
	return ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) Len() int { return r.n }

// At returns the i-th element counting from the front.
func (r *ring[T]) At(i int) T {
	return r.buf[(r.head+i)%len(r.buf)]
}

func (r *ring[T]) Front() T { return r.At(0) }
func (r *ring[T]) Back() T  { return r.At(r.n - 1) }

func (r *ring[T]) PushBack(v T) {
	if r.n == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
}

func (r *ring[T]) PopFront() T {
	var zero T
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return v
}

func (r *ring[T]) grow() {
	size := 2 * len(r.buf)
	if size < 4 {
		size = 4
	}
	buf := make([]T, size)
	for i := 0; i < r.n; i++ {
		buf[i] = r.At(i)
	}
	r.buf = buf
	r.head = 0
}
