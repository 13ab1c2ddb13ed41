package fmtbuf

import "fmt"

// Policy selects what a Composer does when a composition does not fit its
// buffer. The policy is fixed for the instance's lifetime; there is no
// policy that silently delivers truncated output.
type Policy uint8

const (
	// PanicOnOverflow treats exhaustion as a programming error (the buffer
	// was sized too small) and panics with a diagnostic.
	PanicOnOverflow Policy = iota

	// ErrorOnOverflow surfaces exhaustion as an ErrOverflow-wrapping error
	// from Write, committing nothing.
	ErrorOnOverflow

	// CallbackOnOverflow hands exhaustion to a callback that may rebind a
	// larger buffer via SetBuffer; the composition is then retried exactly
	// once. If the retry also fails, Write returns with an empty committed
	// message and no further callback invocations.
	CallbackOnOverflow
)

// OverflowFunc remediates a failed composition. It receives the composer
// and an advisory count of units the failed write attempted to produce.
// It is expected to rebind larger storage via SetBuffer, or do nothing and
// accept that the retry fails too.
type OverflowFunc[U CodeUnit] func(c *Composer[U], attempted int)

// Composer owns a caller-supplied buffer and composes one message at a time
// into it. Instances are created once, reused across many Write calls, and
// are not safe for concurrent use: each goroutine owns its own Composer
// backed by its own storage.
type Composer[U CodeUnit] struct {
	buf        []U
	next       int // first unwritten index; the message is buf[:next]
	policy     Policy
	onOverflow OverflowFunc[U]
}

// NewComposer returns a Composer over buf with the given overflow policy.
// A CallbackOnOverflow composer built this way has no callback and behaves
// as if the callback declined to grow the buffer.
func NewComposer[U CodeUnit](buf []U, policy Policy) *Composer[U] {
	return &Composer[U]{buf: buf, policy: policy}
}

// NewCallbackComposer returns a Composer over buf that invokes fn on
// overflow and retries once.
func NewCallbackComposer[U CodeUnit](buf []U, fn OverflowFunc[U]) *Composer[U] {
	return &Composer[U]{buf: buf, policy: CallbackOnOverflow, onOverflow: fn}
}

// Write discards the previous message and composes values into the buffer.
// On success the composed text becomes the current message. On overflow the
// outcome follows the composer's Policy; the error return is non-nil only
// under ErrorOnOverflow. An empty value list trivially succeeds with an
// empty message.
func (c *Composer[U]) Write(values ...Value) error {
	c.next = 0
	view, err := Append(NewView(c.buf), values...)
	if err == nil {
		c.next = view.Written()
		return nil
	}

	attempted := Measure[U](values...)
	switch c.policy {
	case ErrorOnOverflow:
		return fmt.Errorf("%w: message needs %d units, buffer holds %d", ErrOverflow, attempted, len(c.buf))
	case CallbackOnOverflow:
		if c.onOverflow == nil {
			return nil
		}
		c.onOverflow(c, attempted)
		if view, err = Append(NewView(c.buf), values...); err == nil {
			c.next = view.Written()
		}
		return nil
	default:
		panic(fmt.Sprintf("fmtbuf: message needs %d units, buffer holds %d", attempted, len(c.buf)))
	}
}

// Message returns the committed text as a window into the buffer, valid
// until the next Write, Clear, or SetBuffer.
func (c *Composer[U]) Message() []U { return c.buf[:c.next] }

// Len returns the committed message length in code units.
func (c *Composer[U]) Len() int { return c.next }

// Size returns the capacity of the owned storage.
func (c *Composer[U]) Size() int { return len(c.buf) }

// Clear resets the message to empty without touching the buffer identity
// or the overflow policy.
func (c *Composer[U]) Clear() { c.next = 0 }

// String returns the committed message transcoded to a Go string.
// It allocates; it is a diagnostics convenience, not a hot-path accessor.
func (c *Composer[U]) String() string { return decodeUnits(c.Message()) }

// SetBuffer rebinds the composer to new storage. written is the number of
// leading units of buf that already hold message content — pass 0 for fresh
// storage, or the prior length after copying a message into buf. Rebinding
// is how an OverflowFunc grows storage, and how callers manage their own
// growable storage externally.
func (c *Composer[U]) SetBuffer(buf []U, written int) error {
	if written < 0 || written > len(buf) {
		return fmt.Errorf("%w: %d units into a buffer of %d", ErrInvalidRebind, written, len(buf))
	}
	c.buf = buf
	c.next = written
	return nil
}
