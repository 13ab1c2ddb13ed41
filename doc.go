// Package fmtbuf renders heterogeneous values as text into caller-supplied
// fixed-size buffers without allocating.
//
// It is meant for code paths where the heap is forbidden or already broken:
// allocator-failure diagnostics, signal handlers, assertion messages in
// real-time loops. The write path touches only the caller's buffer and a few
// stack scratch arrays; there is no growth, no printf interpretation, and no
// silent truncation.
//
// The package has two layers. Append is the stateless engine: it serializes
// a sequence of Values into a View over the unwritten tail of a buffer, all
// or nothing. Composer wraps a buffer with a message cursor and an overflow
// Policy, so a single instance can be reused across many compositions.
//
// Buffers are generic over their code unit: []byte composes UTF-8, []uint16
// composes UTF-16 with surrogate pairs, []rune composes UTF-32. Scalar Value
// construction does not allocate; composite constructors (Slice, Record,
// Struct, Any over non-scalars) allocate their descriptors and belong outside
// the no-alloc region.
package fmtbuf
