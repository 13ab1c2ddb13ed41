package fmtbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ComposerTestSuite struct {
	suite.Suite
}

func (s *ComposerTestSuite) TestCommit() {
	c := NewComposer(make([]byte, 64), ErrorOnOverflow)

	s.Require().NoError(c.Write(String("answer: "), Int(42)))
	s.Assert().Equal("answer: 42", c.String())
	s.Assert().Equal(10, c.Len())
	s.Assert().Equal(64, c.Size())
	s.Assert().Equal([]byte("answer: 42"), c.Message())
}

func (s *ComposerTestSuite) TestWriteDiscardsPriorMessage() {
	c := NewComposer(make([]byte, 64), ErrorOnOverflow)

	s.Require().NoError(c.Write(String("a long first message")))
	s.Require().NoError(c.Write(String("short")))
	s.Assert().Equal("short", c.String())
	s.Assert().Equal(5, c.Len())
}

func (s *ComposerTestSuite) TestIdempotentWrites() {
	c := NewComposer(make([]byte, 64), ErrorOnOverflow)

	s.Require().NoError(c.Write(Int(-7), String(" / "), Bool(true)))
	first := c.String()
	s.Require().NoError(c.Write(Int(-7), String(" / "), Bool(true)))
	s.Assert().Equal(first, c.String())
}

func (s *ComposerTestSuite) TestEmptyWriteSucceeds() {
	c := NewComposer(make([]byte, 8), ErrorOnOverflow)

	s.Require().NoError(c.Write(String("junk")))
	s.Require().NoError(c.Write())
	s.Assert().Zero(c.Len())
	s.Assert().Equal("", c.String())
}

func (s *ComposerTestSuite) TestErrorPolicy() {
	c := NewComposer(make([]byte, 4), ErrorOnOverflow)

	err := c.Write(String("does not fit"))
	s.Require().ErrorIs(err, ErrOverflow)
	s.Assert().Zero(c.Len(), "nothing is committed on overflow")
	s.Assert().Equal("", c.String())
}

func (s *ComposerTestSuite) TestPanicPolicy() {
	c := NewComposer(make([]byte, 4), PanicOnOverflow)

	s.Assert().Panics(func() {
		_ = c.Write(String("does not fit"))
	})
}

func (s *ComposerTestSuite) TestCallbackPolicy() {
	s.T().Run("GrowAndRetry", func(t *testing.T) {
		calls := 0
		c := NewCallbackComposer(make([]byte, 4), func(c *Composer[byte], attempted int) {
			calls++
			require.NoError(t, c.SetBuffer(make([]byte, attempted), 0))
		})

		require.NoError(t, c.Write(String("grown to fit")))
		assert.Equal(t, 1, calls, "exactly one callback invocation")
		assert.Equal(t, "grown to fit", c.String())
		assert.Equal(t, len("grown to fit"), c.Size(), "advisory count was exact")
	})

	s.T().Run("CallbackDeclines", func(t *testing.T) {
		calls := 0
		c := NewCallbackComposer(make([]byte, 4), func(c *Composer[byte], attempted int) {
			calls++
		})

		require.NoError(t, c.Write(String("still does not fit")))
		assert.Equal(t, 1, calls, "no second invocation after a failed retry")
		assert.Zero(t, c.Len(), "committed message ends up empty, not stale")
	})

	s.T().Run("NilCallback", func(t *testing.T) {
		c := NewComposer(make([]byte, 4), CallbackOnOverflow)

		require.NoError(t, c.Write(String("does not fit")))
		assert.Zero(t, c.Len())
	})

	s.T().Run("AdvisoryCount", func(t *testing.T) {
		var attempted int
		c := NewCallbackComposer(make([]byte, 2), func(c *Composer[byte], n int) {
			attempted = n
		})

		require.NoError(t, c.Write(String("abc"), Int(10)))
		assert.Equal(t, 5, attempted)
	})
}

func (s *ComposerTestSuite) TestClear() {
	c := NewComposer(make([]byte, 16), ErrorOnOverflow)

	s.Require().NoError(c.Write(String("text")))
	c.Clear()
	s.Assert().Zero(c.Len())
	s.Assert().Equal(16, c.Size(), "buffer identity is untouched")

	s.Require().NoError(c.Write(String("next")))
	s.Assert().Equal("next", c.String())
}

func (s *ComposerTestSuite) TestSetBuffer() {
	s.T().Run("PreservesWrittenPrefix", func(t *testing.T) {
		c := NewComposer(make([]byte, 8), ErrorOnOverflow)
		require.NoError(t, c.Write(String("keep")))

		grown := make([]byte, 32)
		copy(grown, c.Message())
		require.NoError(t, c.SetBuffer(grown, c.Len()))
		assert.Equal(t, "keep", c.String())
		assert.Equal(t, 32, c.Size())
	})

	s.T().Run("RejectsOutOfRangeWritten", func(t *testing.T) {
		c := NewComposer(make([]byte, 8), ErrorOnOverflow)
		assert.ErrorIs(t, c.SetBuffer(make([]byte, 4), 5), ErrInvalidRebind)
		assert.ErrorIs(t, c.SetBuffer(make([]byte, 4), -1), ErrInvalidRebind)
	})
}

func (s *ComposerTestSuite) TestMixedMessage() {
	c := NewComposer(make([]byte, 128), ErrorOnOverflow)

	s.Require().NoError(c.Write(
		String("This is a message with numbers: "),
		Int(12),
		String(", and pointers: "),
		Pointer("void*", 0xDEADBEEF),
	))
	s.Assert().Equal("This is a message with numbers: 12, and pointers: void*(0xDEADBEEF)", c.String())
}

func (s *ComposerTestSuite) TestUTF16Composer() {
	c := NewComposer(make([]uint16, 32), ErrorOnOverflow)

	s.Require().NoError(c.Write(String("temp: "), Int(-3), Char('°')))
	s.Assert().Equal("temp: -3°", c.String())
	s.Assert().Equal(9, c.Len(), "all BMP runes occupy one unit each")
}

func TestComposer(t *testing.T) {
	suite.Run(t, new(ComposerTestSuite))
}
