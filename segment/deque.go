package segment

import "fmt"

// atom is a rune together with the penalties for breaking after it.
// penalty0 is the aggregate of the primary breaker, penalty1 the aggregate
// of all secondary breakers.
type atom struct {
	r        rune
	penalty0 int
	penalty1 int
}

// eotAtom marks the end of text. It is pushed to the queue as soon as the
// rune reader signals io.EOF and will never be part of a segment.
var eotAtom = atom{r: 0, penalty0: 0, penalty1: 0}

func (a atom) String() string {
	if a.r == 0 {
		return fmt.Sprintf("[EOT|%d|%d]", a.penalty0, a.penalty1)
	}
	return fmt.Sprintf("[%+q|%d|%d]", a.r, a.penalty0, a.penalty1)
}

// deque is a double-ended queue of atoms, implemented as a ring buffer.
// The segmenter pushes new atoms to the back and pops segments from the
// front.
type deque struct {
	buf   []atom
	head  int // index of the front atom
	count int
}

const minDequeCap = 16

// Len returns the number of atoms in the queue.
func (dq *deque) Len() int {
	return dq.count
}

// Clear empties the queue, retaining the allocated storage.
func (dq *deque) Clear() {
	dq.head = 0
	dq.count = 0
}

// PushBack appends an atom to the back of the queue.
func (dq *deque) PushBack(r rune, p0, p1 int) {
	if dq.count == len(dq.buf) {
		dq.grow()
	}
	dq.buf[(dq.head+dq.count)%len(dq.buf)] = atom{r: r, penalty0: p0, penalty1: p1}
	dq.count++
}

// PopFront removes the front atom and returns its contents.
// Popping from an empty queue returns the zero atom.
func (dq *deque) PopFront() (rune, int, int) {
	if dq.count == 0 {
		return 0, 0, 0
	}
	a := dq.buf[dq.head]
	dq.head = (dq.head + 1) % len(dq.buf)
	dq.count--
	return a.r, a.penalty0, a.penalty1
}

// Back returns the contents of the last atom of the queue.
func (dq *deque) Back() (rune, int, int) {
	if dq.count == 0 {
		return 0, 0, 0
	}
	return dq.At(dq.count - 1)
}

// At returns the contents of atom i, counted from the front of the queue.
func (dq *deque) At(i int) (rune, int, int) {
	if i < 0 || i >= dq.count {
		panic(fmt.Sprintf("segment.deque: index %d out of range [0:%d]", i, dq.count))
	}
	a := dq.buf[(dq.head+i)%len(dq.buf)]
	return a.r, a.penalty0, a.penalty1
}

// SetAt overwrites atom i, counted from the front of the queue.
func (dq *deque) SetAt(i int, r rune, p0, p1 int) {
	if i < 0 || i >= dq.count {
		panic(fmt.Sprintf("segment.deque: index %d out of range [0:%d]", i, dq.count))
	}
	dq.buf[(dq.head+i)%len(dq.buf)] = atom{r: r, penalty0: p0, penalty1: p1}
}

func (dq *deque) grow() {
	newCap := len(dq.buf) * 2
	if newCap < minDequeCap {
		newCap = minDequeCap
	}
	buf := make([]atom, newCap)
	for i := 0; i < dq.count; i++ {
		buf[i] = dq.buf[(dq.head+i)%len(dq.buf)]
	}
	dq.buf = buf
	dq.head = 0
}
