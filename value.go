package resp

import (
	"fmt"
	"sync"
)

// Value is a single reply of any type, materialized as a tagged tree.
//
// Exactly one of the payload fields is meaningful, selected by Type: Integer for numbers, Double for doubles, Boolean
// for booleans, Str for simple/blob/verbatim strings, big numbers (the decimal text) and errors (the full error
// text), Elems for arrays, sets and pushes, and Pairs for maps. Pairs preserve wire order.
//
// Values decoded with Decode draw their Str, Elems and Pairs allocations from internal pools. Call Release to return
// them once the tree is no longer needed; a decode loop that releases its trees runs allocation-steady. Using a Value
// after Release, or releasing it twice, is undefined.
type Value struct {
	Type Type

	Integer int64
	Double  float64
	Boolean bool
	Str     []byte
	Elems   []Value
	Pairs   []ValuePair
}

// ValuePair is a single key-value entry of a map reply.
type ValuePair struct {
	Key   Value
	Value Value
}

// Err returns the reply error held by v, or nil if v is not an error.
func (v *Value) Err() *ReplyError {
	if v.Type != TypeSimpleError && v.Type != TypeBlobError {
		return nil
	}
	return newReplyError(v.Str)
}

var (
	bufPool = sync.Pool{New: func() interface{} {
		b := make([]byte, 0, 64)
		return &b
	}}
	elemsPool = sync.Pool{New: func() interface{} {
		s := make([]Value, 0, 8)
		return &s
	}}
	pairsPool = sync.Pool{New: func() interface{} {
		s := make([]ValuePair, 0, 8)
		return &s
	}}
)

func getBuf() []byte { return (*bufPool.Get().(*[]byte))[:0] }

func getElems() []Value { return (*elemsPool.Get().(*[]Value))[:0] }

func getPairs() []ValuePair { return (*pairsPool.Get().(*[]ValuePair))[:0] }

func putBuf(b []byte) {
	if cap(b) > 0 {
		bufPool.Put(&b)
	}
}

func putElems(s []Value) {
	if cap(s) > 0 {
		elemsPool.Put(&s)
	}
}

func putPairs(s []ValuePair) {
	if cap(s) > 0 {
		pairsPool.Put(&s)
	}
}

// Release returns every pooled allocation reachable from v and zeroes v.
//
// Each nested string body, element slice and pair slice is returned exactly once. Release must be called at most
// once per decoded tree and only on the root of the tree.
func (v *Value) Release() {
	for i := range v.Elems {
		v.Elems[i].Release()
	}
	for i := range v.Pairs {
		v.Pairs[i].Key.Release()
		v.Pairs[i].Value.Release()
	}
	if v.Str != nil {
		putBuf(v.Str)
	}
	if v.Elems != nil {
		putElems(v.Elems)
	}
	if v.Pairs != nil {
		putPairs(v.Pairs)
	}
	*v = Value{}
}

// UnmarshalRESP decodes the next reply of any type into v.
//
// Attributes in front of the reply are discarded. Previous contents of v are overwritten, not released.
func (v *Value) UnmarshalRESP(rr *Reader) error {
	if err := rr.skipAttributes(); err != nil {
		return err
	}

	ty, err := rr.Peek()
	if err != nil {
		return wrapEOF(err, "value")
	}

	switch ty {
	case TypeNull:
		if err := rr.ReadNull(); err != nil {
			return err
		}
		*v = Value{Type: TypeNull}
		return nil
	case TypeNumber:
		n, err := rr.ReadNumber()
		if err != nil {
			return err
		}
		*v = Value{Type: TypeNumber, Integer: n}
		return nil
	case TypeDouble:
		f, err := rr.ReadDouble()
		if err != nil {
			return err
		}
		*v = Value{Type: TypeDouble, Double: f}
		return nil
	case TypeBoolean:
		b, err := rr.ReadBoolean()
		if err != nil {
			return err
		}
		*v = Value{Type: TypeBoolean, Boolean: b}
		return nil
	case TypeBigNumber:
		buf := getBuf()
		b, err := rr.readBigNumberText(buf)
		if err != nil {
			putBuf(buf)
			return err
		}
		*v = Value{Type: TypeBigNumber, Str: b}
		return nil
	case TypeSimpleString, TypeBlobString, TypeVerbatimString:
		buf := getBuf()
		b, err := rr.readAnyString(buf)
		if err != nil {
			putBuf(buf)
			return err
		}
		*v = Value{Type: ty, Str: b}
		return nil
	case TypeSimpleError:
		buf := getBuf()
		b, err := rr.readSimple(TypeSimpleError, buf)
		if err != nil {
			putBuf(buf)
			return err
		}
		*v = Value{Type: ty, Str: b}
		return nil
	case TypeBlobError:
		buf := getBuf()
		b, chunked, err := rr.ReadBlobError(buf)
		if err == nil && chunked {
			b, err = rr.ReadBlobChunks(b)
		}
		if err != nil {
			putBuf(buf)
			return err
		}
		*v = Value{Type: ty, Str: b}
		return nil
	case TypeArray, TypeSet, TypePush:
		elems, err := rr.readValueElems(ty)
		if err != nil {
			return err
		}
		*v = Value{Type: ty, Elems: elems}
		return nil
	case TypeMap:
		pairs, err := rr.readValuePairs(ty)
		if err != nil {
			return err
		}
		*v = Value{Type: ty, Pairs: pairs}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnexpectedType, ty)
	}
}

func (rr *Reader) readValueElems(ty Type) ([]Value, error) {
	n, chunked, err := rr.readAggregateHeader(ty)
	if err != nil {
		return nil, err
	}

	elems := getElems()
	release := func() {
		for i := range elems {
			elems[i].Release()
		}
		putElems(elems)
	}

	for i := int64(0); chunked || i < n; i++ {
		if chunked {
			next, err := rr.peek()
			if err != nil {
				release()
				return nil, wrapEOF(err, "value or end of stream")
			}
			if next == TypeEnd {
				if err := rr.ReadEnd(); err != nil {
					release()
					return nil, err
				}
				break
			}
		}
		var e Value
		if err := e.UnmarshalRESP(rr); err != nil {
			release()
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func (rr *Reader) readValuePairs(ty Type) ([]ValuePair, error) {
	n, chunked, err := rr.readAggregateHeader(ty)
	if err != nil {
		return nil, err
	}

	pairs := getPairs()
	release := func() {
		for i := range pairs {
			pairs[i].Key.Release()
			pairs[i].Value.Release()
		}
		putPairs(pairs)
	}

	for i := int64(0); chunked || i < n; i++ {
		if chunked {
			next, err := rr.peek()
			if err != nil {
				release()
				return nil, wrapEOF(err, "value or end of stream")
			}
			if next == TypeEnd {
				if err := rr.ReadEnd(); err != nil {
					release()
					return nil, err
				}
				break
			}
		}
		var p ValuePair
		if err := p.Key.UnmarshalRESP(rr); err != nil {
			release()
			return nil, err
		}
		if err := p.Value.UnmarshalRESP(rr); err != nil {
			p.Key.Release()
			release()
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
