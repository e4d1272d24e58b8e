package resp

import (
	"fmt"
	"strconv"
)

// Optional is a decode target for replies that may be null.
//
// Decoding a null reply leaves Valid false; any other reply decodes into Value as usual and sets Valid. Optional
// composes with every other decode target, including the other wrappers.
type Optional[T any] struct {
	Value T
	Valid bool
}

// UnmarshalRESP implements the Unmarshaler interface.
func (o *Optional[T]) UnmarshalRESP(rr *Reader) error {
	if err := rr.skipAttributes(); err != nil {
		return err
	}

	ty, err := rr.Peek()
	if err != nil {
		return wrapEOF(err, "reply")
	}
	if ty == TypeNull {
		o.setNull()
		return rr.ReadNull()
	}
	if err := Decode(rr, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o *Optional[T]) setNull() {
	var zero T
	o.Value, o.Valid = zero, false
}

// OrErr is a decode target that captures error and null replies instead of failing the decode.
//
// After a successful decode exactly one case holds: Ok reports a normal reply decoded into Value, otherwise either
// Code holds the error code of an error reply or Null is set. OrErr retains only the error code; use OrFullErr to
// also keep the message.
type OrErr[T any] struct {
	Value T
	Code  string
	Null  bool
}

// Ok reports whether the reply was neither an error nor null.
func (o *OrErr[T]) Ok() bool {
	return o.Code == "" && !o.Null
}

// UnmarshalRESP implements the Unmarshaler interface.
func (o *OrErr[T]) UnmarshalRESP(rr *Reader) error {
	if err := rr.skipAttributes(); err != nil {
		return err
	}

	ty, err := rr.Peek()
	if err != nil {
		return wrapEOF(err, "reply")
	}
	switch ty {
	case TypeNull:
		o.setNull()
		return rr.ReadNull()
	case TypeSimpleError, TypeBlobError:
		code, err := rr.readErrorCode()
		if err != nil {
			return err
		}
		var zero T
		o.Value, o.Code, o.Null = zero, code, false
		return nil
	}
	if err := Decode(rr, &o.Value); err != nil {
		return err
	}
	o.Code, o.Null = "", false
	return nil
}

func (o *OrErr[T]) setNull() {
	var zero T
	o.Value, o.Code, o.Null = zero, "", true
}

// OrFullErr is like OrErr but retains the full error reply, both code and message.
type OrFullErr[T any] struct {
	Value T
	Err   *ReplyError
	Null  bool
}

// Ok reports whether the reply was neither an error nor null.
func (o *OrFullErr[T]) Ok() bool {
	return o.Err == nil && !o.Null
}

// UnmarshalRESP implements the Unmarshaler interface.
func (o *OrFullErr[T]) UnmarshalRESP(rr *Reader) error {
	if err := rr.skipAttributes(); err != nil {
		return err
	}

	ty, err := rr.Peek()
	if err != nil {
		return wrapEOF(err, "reply")
	}
	switch ty {
	case TypeNull:
		o.setNull()
		return rr.ReadNull()
	case TypeSimpleError, TypeBlobError:
		re, err := rr.ReadError()
		if err != nil {
			return err
		}
		var zero T
		o.Value, o.Err, o.Null = zero, re, false
		return nil
	}
	if err := Decode(rr, &o.Value); err != nil {
		return err
	}
	o.Err, o.Null = nil, false
	return nil
}

func (o *OrFullErr[T]) setNull() {
	var zero T
	o.Value, o.Err, o.Null = zero, nil, true
}

// FixedBuf is a string decode target backed by a caller-supplied buffer, for decoding without any allocation.
//
// The capacity is the length of the backing slice passed to NewFixedBuf. Decoding a string longer than the capacity
// fails with ErrCapacityExceeded; the reply is still consumed. Numbers, doubles and big numbers are formatted into
// the buffer as text.
type FixedBuf struct {
	buf []byte
	n   int
}

// NewFixedBuf returns a FixedBuf backed by the given slice. The slice is written to in place.
func NewFixedBuf(backing []byte) *FixedBuf {
	return &FixedBuf{buf: backing}
}

// Bytes returns the decoded content. The returned slice aliases the backing slice and is valid until the next decode.
func (b *FixedBuf) Bytes() []byte {
	return b.buf[:b.n]
}

// String returns the decoded content as a string.
func (b *FixedBuf) String() string {
	return string(b.Bytes())
}

// Len returns the length of the decoded content.
func (b *FixedBuf) Len() int {
	return b.n
}

// Cap returns the capacity of the backing slice.
func (b *FixedBuf) Cap() int {
	return len(b.buf)
}

// Reset truncates the content to zero length. The backing slice is kept.
func (b *FixedBuf) Reset() {
	b.n = 0
}

func (b *FixedBuf) set(src []byte) error {
	if len(src) > len(b.buf) {
		b.n = 0
		return fmt.Errorf("%w: got %d bytes, capacity is %d", ErrCapacityExceeded, len(src), len(b.buf))
	}
	b.n = copy(b.buf, src)
	return nil
}

// UnmarshalRESP implements the Unmarshaler interface.
func (b *FixedBuf) UnmarshalRESP(rr *Reader) error {
	if err := rr.skipAttributes(); err != nil {
		return err
	}

	ty, err := rr.Peek()
	if err != nil {
		return wrapEOF(err, "reply")
	}

	switch ty {
	case TypeNumber:
		n, err := rr.ReadNumber()
		if err != nil {
			return err
		}
		var tmp [20]byte
		return b.set(strconv.AppendInt(tmp[:0], n, 10))
	case TypeDouble:
		f, err := rr.ReadDouble()
		if err != nil {
			return err
		}
		var tmp [32]byte
		return b.set(strconv.AppendFloat(tmp[:0], f, 'f', -1, 64))
	case TypeBigNumber:
		var tmp [64]byte
		t, err := rr.readBigNumberText(tmp[:0])
		if err != nil {
			return err
		}
		return b.set(t)
	case TypeSimpleString:
		buf := getBuf()
		s, err := rr.readSimple(TypeSimpleString, buf)
		if err != nil {
			putBuf(buf)
			return err
		}
		err = b.set(s)
		putBuf(s)
		return err
	case TypeVerbatimString:
		buf := getBuf()
		s, err := rr.readAnyString(buf)
		if err != nil {
			putBuf(buf)
			return err
		}
		err = b.set(s)
		putBuf(s)
		return err
	case TypeBlobString:
		return b.decodeBlob(rr)
	case TypeNull:
		if err := rr.ReadNull(); err != nil {
			return err
		}
		return fmt.Errorf("%w: target %T cannot hold null", ErrUnexpectedNull, b)
	case TypeSimpleError, TypeBlobError:
		re, err := rr.ReadError()
		if err != nil {
			return err
		}
		return re
	default:
		if _, err := rr.discardValue(); err != nil {
			return err
		}
		return convErr(ty, b)
	}
}

// decodeBlob reads a blob string directly into the backing slice, checking the announced length against the capacity
// before reading the body so that an oversized reply is discarded instead of copied.
func (b *FixedBuf) decodeBlob(rr *Reader) error {
	if rr.consume([]byte{byte(TypeBlobString), '?', '\r', '\n'}) {
		return b.decodeChunks(rr)
	}

	if err := rr.expect(TypeBlobString); err != nil {
		return err
	}
	n, err := rr.readNumber()
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: got length %d", ErrInvalidBlobLength, n)
	}
	if int(n) > len(b.buf) {
		if err := rr.discardBlobBody(int(n)); err != nil {
			return err
		}
		b.n = 0
		return fmt.Errorf("%w: got %d bytes, capacity is %d", ErrCapacityExceeded, n, len(b.buf))
	}
	s, err := rr.readBlobBody(b.buf[:0], int(n))
	if err != nil {
		return err
	}
	b.n = len(s)
	return nil
}

func (b *FixedBuf) decodeChunks(rr *Reader) error {
	cur := b.buf[:0]
	for {
		res, last, err := rr.ReadBlobChunk(cur)
		if err != nil {
			return err
		}
		cur = res
		if len(cur) > len(b.buf) {
			if !last {
				if err := rr.discardBlobChunks(); err != nil {
					return err
				}
			}
			b.n = 0
			return fmt.Errorf("%w: got %d bytes, capacity is %d", ErrCapacityExceeded, len(cur), len(b.buf))
		}
		if last {
			// cur still aliases the backing slice since it never outgrew it
			b.n = len(cur)
			return nil
		}
	}
}
