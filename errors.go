package fmtbuf

import "errors"

var (
	// ErrOverflow indicates that a composition does not fit the remaining
	// buffer space. Nothing is committed: a failing Append returns the view
	// it was given, and a failing Composer.Write leaves the committed
	// message empty.
	ErrOverflow = errors.New("fmtbuf: buffer cannot hold composed message")

	// ErrInvalidRebind indicates that SetBuffer was called with a written
	// count that lies outside the new buffer.
	ErrInvalidRebind = errors.New("fmtbuf: rebind written count exceeds buffer capacity")
)
