package fmtbuf

import "fmt"

func ExampleComposer_Write() {
	// One fixed buffer, reused for every message; nothing here allocates
	// after setup.
	c := NewComposer(make([]byte, 96), ErrorOnOverflow)

	if err := c.Write(
		String("This is a message with numbers: "),
		Int(12),
		String(", and pointers: "),
		Pointer("void*", 0xDEADBEEF),
	); err != nil {
		panic(err)
	}
	fmt.Println(c.String())
	// Output: This is a message with numbers: 12, and pointers: void*(0xDEADBEEF)
}

func ExampleNewCallbackComposer() {
	// The callback rebinds larger storage; the write is retried once.
	c := NewCallbackComposer(make([]byte, 4), func(c *Composer[byte], attempted int) {
		_ = c.SetBuffer(make([]byte, attempted), 0)
	})

	_ = c.Write(String("grown: "), Slice(1, 2, 3))
	fmt.Println(c.String())
	// Output: grown: int[1, 2, 3]
}

func ExampleMeasure() {
	// Size a buffer before composing into it.
	n := Measure[uint16](String("a"), Char('😀'))
	fmt.Println(n)
	// Output: 3
}
