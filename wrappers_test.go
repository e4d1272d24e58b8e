package resp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvasari/resp"
)

func TestOptional(t *testing.T) {
	t.Run("Null", func(t *testing.T) {
		var o resp.Optional[string]
		require.NoError(t, resp.Decode(decodeReader("_\r\n"), &o))
		require.False(t, o.Valid)
		require.Empty(t, o.Value)
	})
	t.Run("RESP2Null", func(t *testing.T) {
		var o resp.Optional[string]
		require.NoError(t, resp.Decode(decodeReader("$-1\r\n"), &o))
		require.False(t, o.Valid)
	})
	t.Run("String", func(t *testing.T) {
		var o resp.Optional[string]
		require.NoError(t, resp.Decode(decodeReader("$5\r\nhello\r\n"), &o))
		require.True(t, o.Valid)
		require.Equal(t, "hello", o.Value)
	})
	t.Run("Int", func(t *testing.T) {
		var o resp.Optional[int64]
		require.NoError(t, resp.Decode(decodeReader(":42\r\n"), &o))
		require.True(t, o.Valid)
		require.Equal(t, int64(42), o.Value)
	})
	t.Run("Slice", func(t *testing.T) {
		var o resp.Optional[[]string]
		require.NoError(t, resp.Decode(decodeReader("*2\r\n+a\r\n+b\r\n"), &o))
		require.True(t, o.Valid)
		require.Equal(t, []string{"a", "b"}, o.Value)
	})
	t.Run("NullZeroesPreviousValue", func(t *testing.T) {
		rr := decodeReader(":42\r\n_\r\n")
		var o resp.Optional[int64]
		require.NoError(t, resp.Decode(rr, &o))
		require.NoError(t, resp.Decode(rr, &o))
		require.False(t, o.Valid)
		require.Zero(t, o.Value)
	})
	t.Run("ErrorReply", func(t *testing.T) {
		rr := decodeReader("-ERR x\r\n+OK\r\n")
		var o resp.Optional[int64]
		require.ErrorIs(t, resp.Decode(rr, &o), resp.ErrReply)
		require.False(t, o.Valid)
		decodeNext(t, rr)
	})
	t.Run("SkipsAttributes", func(t *testing.T) {
		var o resp.Optional[int64]
		require.NoError(t, resp.Decode(decodeReader("|1\r\n+ttl\r\n:1\r\n:42\r\n"), &o))
		require.True(t, o.Valid)
		require.Equal(t, int64(42), o.Value)
	})
}

func TestOrErr(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		var o resp.OrErr[int64]
		require.NoError(t, resp.Decode(decodeReader(":42\r\n"), &o))
		require.True(t, o.Ok())
		require.Equal(t, int64(42), o.Value)
	})
	t.Run("Error", func(t *testing.T) {
		rr := decodeReader("-WRONGTYPE Operation against a key holding the wrong kind of value\r\n+OK\r\n")
		var o resp.OrErr[int64]
		require.NoError(t, resp.Decode(rr, &o))
		require.False(t, o.Ok())
		require.Equal(t, "WRONGTYPE", o.Code)
		require.False(t, o.Null)
		decodeNext(t, rr)
	})
	t.Run("BlobError", func(t *testing.T) {
		var o resp.OrErr[string]
		require.NoError(t, resp.Decode(decodeReader("!21\r\nSYNTAX invalid syntax\r\n"), &o))
		require.Equal(t, "SYNTAX", o.Code)
	})
	t.Run("Null", func(t *testing.T) {
		var o resp.OrErr[int64]
		require.NoError(t, resp.Decode(decodeReader("_\r\n"), &o))
		require.False(t, o.Ok())
		require.True(t, o.Null)
		require.Empty(t, o.Code)
	})
	t.Run("ValueResetsErrorState", func(t *testing.T) {
		rr := decodeReader("-ERR x\r\n:1\r\n")
		var o resp.OrErr[int64]
		require.NoError(t, resp.Decode(rr, &o))
		require.NoError(t, resp.Decode(rr, &o))
		require.True(t, o.Ok())
		require.Equal(t, int64(1), o.Value)
	})
	t.Run("ConversionFailureStillFails", func(t *testing.T) {
		rr := decodeReader("#t\r\n+OK\r\n")
		var o resp.OrErr[string]
		require.ErrorIs(t, resp.Decode(rr, &o), resp.ErrUnsupportedConversion)
		decodeNext(t, rr)
	})
}

func TestOrFullErr(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		var o resp.OrFullErr[string]
		require.NoError(t, resp.Decode(decodeReader("$5\r\nhello\r\n"), &o))
		require.True(t, o.Ok())
		require.Equal(t, "hello", o.Value)
	})
	t.Run("Error", func(t *testing.T) {
		var o resp.OrFullErr[string]
		require.NoError(t, resp.Decode(decodeReader("-ERR x\r\n"), &o))
		require.False(t, o.Ok())
		require.NotNil(t, o.Err)
		require.Equal(t, "ERR", o.Err.Code)
		require.Equal(t, "x", o.Err.Message)
	})
	t.Run("Null", func(t *testing.T) {
		var o resp.OrFullErr[string]
		require.NoError(t, resp.Decode(decodeReader("_\r\n"), &o))
		require.True(t, o.Null)
		require.Nil(t, o.Err)
	})
	t.Run("OptionalComposition", func(t *testing.T) {
		var o resp.Optional[resp.OrFullErr[int64]]
		require.NoError(t, resp.Decode(decodeReader("-ERR x\r\n"), &o))
		require.True(t, o.Valid)
		require.False(t, o.Value.Ok())
		require.Equal(t, "ERR", o.Value.Err.Code)
	})
}

func TestFixedBuf(t *testing.T) {
	t.Run("Blob", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 16))
		require.NoError(t, resp.Decode(decodeReader("$5\r\nhello\r\n"), fb))
		require.Equal(t, "hello", fb.String())
		require.Equal(t, 5, fb.Len())
		require.Equal(t, 16, fb.Cap())
	})
	t.Run("BlobExactCapacity", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 5))
		require.NoError(t, resp.Decode(decodeReader("$5\r\nhello\r\n"), fb))
		require.Equal(t, []byte("hello"), fb.Bytes())
	})
	t.Run("BlobTooLarge", func(t *testing.T) {
		rr := decodeReader("$11\r\nhello world\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 5))
		require.ErrorIs(t, resp.Decode(rr, fb), resp.ErrCapacityExceeded)
		require.Zero(t, fb.Len())
		decodeNext(t, rr)
	})
	t.Run("EmptyBlob", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 4))
		require.NoError(t, resp.Decode(decodeReader("$0\r\n\r\n"), fb))
		require.Zero(t, fb.Len())
	})
	t.Run("Simple", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 4))
		require.NoError(t, resp.Decode(decodeReader("+PONG\r\n"), fb))
		require.Equal(t, "PONG", fb.String())
	})
	t.Run("SimpleTooLarge", func(t *testing.T) {
		rr := decodeReader("+PONG\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 3))
		require.ErrorIs(t, resp.Decode(rr, fb), resp.ErrCapacityExceeded)
		decodeNext(t, rr)
	})
	t.Run("SimpleTruncated", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 8))
		require.ErrorIs(t, resp.Decode(decodeReader("+PONG"), fb), resp.ErrUnexpectedEOL)
		require.Zero(t, fb.Len())
	})
	t.Run("Verbatim", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 16))
		require.NoError(t, resp.Decode(decodeReader("=15\r\ntxt:Some string\r\n"), fb))
		require.Equal(t, "Some string", fb.String())
	})
	t.Run("VerbatimTruncated", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 16))
		require.ErrorIs(t, resp.Decode(decodeReader("=7\r\nfoo:bar"), fb), resp.ErrUnexpectedEOL)
		require.Zero(t, fb.Len())
	})
	t.Run("Number", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 4))
		require.NoError(t, resp.Decode(decodeReader(":-128\r\n"), fb))
		require.Equal(t, "-128", fb.String())
	})
	t.Run("Double", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 8))
		require.NoError(t, resp.Decode(decodeReader(",1.5\r\n"), fb))
		require.Equal(t, "1.5", fb.String())
	})
	t.Run("BigNumber", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 64))
		require.NoError(t, resp.Decode(decodeReader("(3492890328409238509324850943850943825024385\r\n"), fb))
		require.Equal(t, "3492890328409238509324850943850943825024385", fb.String())
	})
	t.Run("NumberTooLarge", func(t *testing.T) {
		rr := decodeReader(":12345\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 4))
		require.ErrorIs(t, resp.Decode(rr, fb), resp.ErrCapacityExceeded)
		decodeNext(t, rr)
	})
	t.Run("Chunked", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 16))
		require.NoError(t, resp.Decode(decodeReader("$?\r\n;4\r\nHell\r\n;5\r\no wor\r\n;2\r\nld\r\n;0\r\n"), fb))
		require.Equal(t, "Hello world", fb.String())
	})
	t.Run("ChunkedTooLarge", func(t *testing.T) {
		rr := decodeReader("$?\r\n;4\r\nHell\r\n;5\r\no wor\r\n;2\r\nld\r\n;0\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 8))
		require.ErrorIs(t, resp.Decode(rr, fb), resp.ErrCapacityExceeded)
		require.Zero(t, fb.Len())
		decodeNext(t, rr)
	})
	t.Run("Null", func(t *testing.T) {
		rr := decodeReader("_\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 4))
		require.ErrorIs(t, resp.Decode(rr, fb), resp.ErrUnexpectedNull)
		decodeNext(t, rr)
	})
	t.Run("ErrorReply", func(t *testing.T) {
		rr := decodeReader("-ERR x\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 4))
		err := resp.Decode(rr, fb)
		require.ErrorIs(t, err, resp.ErrReply)
		decodeNext(t, rr)
	})
	t.Run("Aggregate", func(t *testing.T) {
		rr := decodeReader("*2\r\n:1\r\n:2\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 4))
		require.ErrorIs(t, resp.Decode(rr, fb), resp.ErrUnsupportedConversion)
		decodeNext(t, rr)
	})
	t.Run("Boolean", func(t *testing.T) {
		rr := decodeReader("#t\r\n+OK\r\n")
		fb := resp.NewFixedBuf(make([]byte, 4))
		require.ErrorIs(t, resp.Decode(rr, fb), resp.ErrUnsupportedConversion)
		decodeNext(t, rr)
	})
	t.Run("Reuse", func(t *testing.T) {
		rr := decodeReader("$5\r\nhello\r\n$2\r\nhi\r\n")
		fb := resp.NewFixedBuf(make([]byte, 8))
		require.NoError(t, resp.Decode(rr, fb))
		require.NoError(t, resp.Decode(rr, fb))
		require.Equal(t, "hi", fb.String())
	})
	t.Run("Reset", func(t *testing.T) {
		fb := resp.NewFixedBuf(make([]byte, 8))
		require.NoError(t, resp.Decode(decodeReader("$5\r\nhello\r\n"), fb))
		fb.Reset()
		require.Zero(t, fb.Len())
		require.Equal(t, 8, fb.Cap())
	})
	t.Run("OptionalComposition", func(t *testing.T) {
		var o resp.Optional[resp.FixedBuf]
		require.NoError(t, resp.Decode(decodeReader("_\r\n"), &o))
		require.False(t, o.Valid)
	})
}
