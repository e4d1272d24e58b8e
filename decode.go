package resp

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"sync"
)

// Unmarshaler is the interface implemented by types that can decode themselves from a Reader.
//
// UnmarshalRESP must consume exactly one reply, including on failure, so that the Reader stays positioned on a reply
// boundary.
type Unmarshaler interface {
	UnmarshalRESP(rr *Reader) error
}

// nullable is implemented by wrapper types that can represent absence. Struct decoding uses it to mark declared
// fields that are missing from the wire data.
type nullable interface {
	setNull()
}

// Decode reads the next reply from rr into dst, dispatching on both the wire type and the type of dst.
//
// dst may be a pointer to any integer or float type, string, []byte, bool, big.Int, a struct, a slice, a map with
// string-like keys, a Value, or any type implementing Unmarshaler, including the Optional, OrErr, OrFullErr and
// FixedBuf wrappers. A nil dst discards the reply.
//
// Numbers decode into any numeric type wide enough to hold them and format into string targets; strings parse into
// numeric targets; doubles never decode into integers. Arrays decode into slices element-wise. Structs decode from
// the flat field-value lists Redis returns for hashes and streams as well as from RESP3 maps: fields are matched by
// their `resp:"..."` tag or, without a tag, by their exact field name. Wire entries that match no field are skipped.
// Declared fields missing from the wire data are an error unless the field is a pointer or can otherwise represent
// absence.
//
// Error replies surface as a *ReplyError (matching errors.Is(err, ErrReply)) and null replies as ErrUnexpectedNull
// unless the target captures them. RESP3 attributes are discarded before dispatch.
//
// On any failure past the header parsing the offending reply is still consumed in full, so the Reader remains usable
// for the next reply.
func Decode(rr *Reader, dst interface{}) error {
	if u, ok := dst.(Unmarshaler); ok {
		return u.UnmarshalRESP(rr)
	}
	if err := rr.skipAttributes(); err != nil {
		return err
	}
	if dst == nil {
		_, err := rr.Discard(false)
		return err
	}

	ty, err := rr.Peek()
	if err != nil {
		return wrapEOF(err, "reply")
	}

	switch ty {
	case TypeNull:
		if err := rr.ReadNull(); err != nil {
			return err
		}
		return fmt.Errorf("%w: target %T cannot hold null", ErrUnexpectedNull, dst)
	case TypeSimpleError, TypeBlobError:
		re, err := rr.ReadError()
		if err != nil {
			return err
		}
		return re
	case TypeNumber:
		n, err := rr.ReadNumber()
		if err != nil {
			return err
		}
		return storeInt(ty, dst, n)
	case TypeDouble:
		f, err := rr.ReadDouble()
		if err != nil {
			return err
		}
		return storeFloat(ty, dst, f)
	case TypeBoolean:
		b, err := rr.ReadBoolean()
		if err != nil {
			return err
		}
		return storeBool(ty, dst, b)
	case TypeBigNumber:
		return decodeBigNumber(rr, dst)
	case TypeSimpleString, TypeBlobString, TypeVerbatimString:
		return decodeString(rr, ty, dst)
	case TypeArray, TypeSet, TypePush, TypeMap:
		return decodeAggregate(rr, ty, dst)
	default:
		return fmt.Errorf("%w: %q", ErrUnexpectedType, ty)
	}
}

func convErr(ty Type, dst interface{}) error {
	return fmt.Errorf("%w: cannot decode %q into %T", ErrUnsupportedConversion, ty, dst)
}

func rangeErr(dst interface{}, s string) error {
	return fmt.Errorf("%w: value %s out of range for %T", ErrUnsupportedConversion, s, dst)
}

func storeInt(ty Type, dst interface{}, n int64) error {
	switch d := dst.(type) {
	case *int64:
		*d = n
	case *int:
		if int64(int(n)) != n {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = int(n)
	case *int32:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = int32(n)
	case *int16:
		if n < math.MinInt16 || n > math.MaxInt16 {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = int16(n)
	case *int8:
		if n < math.MinInt8 || n > math.MaxInt8 {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = int8(n)
	case *uint64:
		if n < 0 {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = uint64(n)
	case *uint:
		if n < 0 || uint64(uint(n)) != uint64(n) {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = uint(n)
	case *uint32:
		if n < 0 || n > math.MaxUint32 {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = uint32(n)
	case *uint16:
		if n < 0 || n > math.MaxUint16 {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = uint16(n)
	case *uint8:
		if n < 0 || n > math.MaxUint8 {
			return rangeErr(dst, strconv.FormatInt(n, 10))
		}
		*d = uint8(n)
	case *float64:
		*d = float64(n)
	case *float32:
		*d = float32(n)
	case *string:
		var tmp [20]byte
		*d = string(strconv.AppendInt(tmp[:0], n, 10))
	case *[]byte:
		*d = strconv.AppendInt((*d)[:0], n, 10)
	default:
		return convErr(ty, dst)
	}
	return nil
}

func storeFloat(ty Type, dst interface{}, f float64) error {
	switch d := dst.(type) {
	case *float64:
		*d = f
	case *float32:
		*d = float32(f)
	case *string:
		var tmp [32]byte
		*d = string(strconv.AppendFloat(tmp[:0], f, 'f', -1, 64))
	case *[]byte:
		*d = strconv.AppendFloat((*d)[:0], f, 'f', -1, 64)
	default:
		return convErr(ty, dst)
	}
	return nil
}

func storeBool(ty Type, dst interface{}, b bool) error {
	if d, ok := dst.(*bool); ok {
		*d = b
		return nil
	}
	switch dst.(type) {
	case *int64, *int, *int32, *int16, *int8,
		*uint64, *uint, *uint32, *uint16, *uint8,
		*float64, *float32:
		var n int64
		if b {
			n = 1
		}
		return storeInt(ty, dst, n)
	}
	return convErr(ty, dst)
}

func decodeBigNumber(rr *Reader, dst interface{}) error {
	switch d := dst.(type) {
	case *big.Int:
		return rr.ReadBigNumber(d)
	case *string:
		var buf [64]byte
		b, err := rr.readBigNumberText(buf[:0])
		if err != nil {
			return err
		}
		*d = string(b)
	case *[]byte:
		b, err := rr.readBigNumberText((*d)[:0])
		if err != nil {
			return err
		}
		*d = b
	default:
		var buf [64]byte
		if _, err := rr.readBigNumberText(buf[:0]); err != nil {
			return err
		}
		return convErr(TypeBigNumber, dst)
	}
	return nil
}

func decodeString(rr *Reader, ty Type, dst interface{}) error {
	switch d := dst.(type) {
	case *[]byte:
		b, err := rr.readAnyString((*d)[:0])
		if err != nil {
			return err
		}
		*d = b
		return nil
	case *string:
		buf := getBuf()
		b, err := rr.readAnyString(buf)
		if err != nil {
			putBuf(buf)
			return err
		}
		*d = string(b)
		putBuf(b)
		return nil
	}

	if rv := reflect.ValueOf(dst); rv.Kind() == reflect.Ptr && !rv.IsNil() &&
		rv.Elem().Kind() == reflect.Array && rv.Elem().Type().Elem().Kind() == reflect.Uint8 {
		return decodeByteArray(rr, rv.Elem())
	}

	var buf [32]byte
	b, err := rr.readAnyString(buf[:0])
	if err != nil {
		return err
	}
	return parseInto(ty, dst, b)
}

func decodeByteArray(rr *Reader, arr reflect.Value) error {
	buf := getBuf()
	b, err := rr.readAnyString(buf)
	if err != nil {
		putBuf(buf)
		return err
	}
	defer putBuf(b)
	if len(b) > arr.Len() {
		return fmt.Errorf("%w: got %d bytes, capacity is %d", ErrCapacityExceeded, len(b), arr.Len())
	}
	reflect.Copy(arr, reflect.ValueOf(b))
	for i := len(b); i < arr.Len(); i++ {
		arr.Index(i).SetUint(0)
	}
	return nil
}

func parseInto(ty Type, dst interface{}, b []byte) error {
	parseErr := func(err error) error {
		if err != nil {
			return fmt.Errorf("%w: cannot parse %q into %T", ErrUnsupportedConversion, string(b), dst)
		}
		return nil
	}

	switch d := dst.(type) {
	case *int64:
		n, err := strconv.ParseInt(string(b), 10, 64)
		if err == nil {
			*d = n
		}
		return parseErr(err)
	case *int:
		n, err := strconv.ParseInt(string(b), 10, strconv.IntSize)
		if err == nil {
			*d = int(n)
		}
		return parseErr(err)
	case *int32:
		n, err := strconv.ParseInt(string(b), 10, 32)
		if err == nil {
			*d = int32(n)
		}
		return parseErr(err)
	case *int16:
		n, err := strconv.ParseInt(string(b), 10, 16)
		if err == nil {
			*d = int16(n)
		}
		return parseErr(err)
	case *int8:
		n, err := strconv.ParseInt(string(b), 10, 8)
		if err == nil {
			*d = int8(n)
		}
		return parseErr(err)
	case *uint64:
		n, err := strconv.ParseUint(string(b), 10, 64)
		if err == nil {
			*d = n
		}
		return parseErr(err)
	case *uint:
		n, err := strconv.ParseUint(string(b), 10, strconv.IntSize)
		if err == nil {
			*d = uint(n)
		}
		return parseErr(err)
	case *uint32:
		n, err := strconv.ParseUint(string(b), 10, 32)
		if err == nil {
			*d = uint32(n)
		}
		return parseErr(err)
	case *uint16:
		n, err := strconv.ParseUint(string(b), 10, 16)
		if err == nil {
			*d = uint16(n)
		}
		return parseErr(err)
	case *uint8:
		n, err := strconv.ParseUint(string(b), 10, 8)
		if err == nil {
			*d = uint8(n)
		}
		return parseErr(err)
	case *float64:
		f, err := strconv.ParseFloat(string(b), 64)
		if err == nil {
			*d = f
		}
		return parseErr(err)
	case *float32:
		f, err := strconv.ParseFloat(string(b), 32)
		if err == nil {
			*d = float32(f)
		}
		return parseErr(err)
	case *bool:
		v, err := strconv.ParseBool(string(b))
		if err == nil {
			*d = v
		}
		return parseErr(err)
	default:
		return convErr(ty, dst)
	}
}

func decodeAggregate(rr *Reader, ty Type, dst interface{}) error {
	n, chunked, err := rr.readAggregateHeader(ty)
	if err != nil {
		return err
	}

	// element count on the wire; maps count pairs
	elems := n
	if ty == TypeMap {
		elems = n * 2
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		rr.drainAggregate(elems, chunked)
		return convErr(ty, dst)
	}

	switch ev := rv.Elem(); ev.Kind() {
	case reflect.Slice:
		return decodeSlice(rr, ev, elems, chunked)
	case reflect.Struct:
		return decodeStruct(rr, ty, ev, elems, chunked)
	case reflect.Map:
		return decodeGoMap(rr, ty, ev, elems, chunked)
	default:
		rr.drainAggregate(elems, chunked)
		return convErr(ty, dst)
	}
}

// drainAggregate discards the remaining elements of an aggregate so that a decode failure inside it still leaves the
// cursor on a reply boundary. Errors are ignored; the original failure is what reaches the caller.
func (rr *Reader) drainAggregate(remaining int64, chunked bool) {
	if chunked {
		for {
			next, err := rr.peek()
			if err != nil {
				return
			}
			if next == TypeEnd {
				_ = rr.ReadEnd()
				return
			}
			if _, err := rr.discardValue(); err != nil {
				return
			}
		}
	}
	for i := int64(0); i < remaining; i++ {
		if _, err := rr.discardValue(); err != nil {
			return
		}
	}
}

func decodeSlice(rr *Reader, v reflect.Value, elems int64, chunked bool) error {
	st := v.Type()

	if !chunked {
		s := reflect.MakeSlice(st, int(elems), int(elems))
		for i := int64(0); i < elems; i++ {
			if err := Decode(rr, s.Index(int(i)).Addr().Interface()); err != nil {
				rr.drainAggregate(elems-i-1, false)
				return err
			}
		}
		v.Set(s)
		return nil
	}

	s := reflect.MakeSlice(st, 0, 0)
	for {
		next, err := rr.peek()
		if err != nil {
			return wrapEOF(err, "value or end of stream")
		}
		if next == TypeEnd {
			if err := rr.ReadEnd(); err != nil {
				return err
			}
			break
		}
		s = reflect.Append(s, reflect.Zero(st.Elem()))
		if err := Decode(rr, s.Index(s.Len()-1).Addr().Interface()); err != nil {
			rr.drainAggregate(0, true)
			return err
		}
	}
	v.Set(s)
	return nil
}

func decodeGoMap(rr *Reader, ty Type, v reflect.Value, elems int64, chunked bool) error {
	mt := v.Type()
	if mt.Key().Kind() != reflect.String {
		rr.drainAggregate(elems, chunked)
		return convErr(ty, v.Addr().Interface())
	}
	if !chunked && elems%2 != 0 {
		rr.drainAggregate(elems, false)
		return fmt.Errorf("%w: %q with odd length %d into %s", ErrUnsupportedConversion, ty, elems, mt)
	}

	m := reflect.MakeMapWithSize(mt, int(elems/2))
	for i := int64(0); chunked || i < elems; i += 2 {
		if chunked {
			next, err := rr.peek()
			if err != nil {
				return wrapEOF(err, "value or end of stream")
			}
			if next == TypeEnd {
				if err := rr.ReadEnd(); err != nil {
					return err
				}
				break
			}
		}
		var key string
		if err := Decode(rr, &key); err != nil {
			rr.drainAggregate(elems-i-1, chunked)
			return err
		}
		val := reflect.New(mt.Elem())
		if err := Decode(rr, val.Interface()); err != nil {
			rr.drainAggregate(elems-i-2, chunked)
			return err
		}
		m.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), val.Elem())
	}
	v.Set(m)
	return nil
}

type structField struct {
	name    string
	index   int
	canNull bool
}

type structFields struct {
	fields []structField
	byName map[string]int
}

var (
	structCache  sync.Map // reflect.Type -> *structFields
	nullableType = reflect.TypeOf((*nullable)(nil)).Elem()
)

func cachedStructFields(t reflect.Type) *structFields {
	if f, ok := structCache.Load(t); ok {
		return f.(*structFields)
	}

	sf := &structFields{byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("resp"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		sf.byName[name] = len(sf.fields)
		sf.fields = append(sf.fields, structField{
			name:    name,
			index:   i,
			canNull: f.Type.Kind() == reflect.Ptr || reflect.PointerTo(f.Type).Implements(nullableType),
		})
	}

	structCache.Store(t, sf)
	return sf
}

// decodeStruct decodes a flat field-value list (or a map, where each entry counts as two elements) into a struct.
// Field matching is case-sensitive; wire entries without a matching field are skipped.
func decodeStruct(rr *Reader, ty Type, v reflect.Value, elems int64, chunked bool) error {
	if !chunked && elems%2 != 0 {
		rr.drainAggregate(elems, false)
		return fmt.Errorf("%w: %q with odd length %d into %s", ErrUnsupportedConversion, ty, elems, v.Type())
	}

	fields := cachedStructFields(v.Type())
	seen := make([]bool, len(fields.fields))

	var keyBuf [64]byte
	for i := int64(0); chunked || i < elems; i += 2 {
		if chunked {
			next, err := rr.peek()
			if err != nil {
				return wrapEOF(err, "value or end of stream")
			}
			if next == TypeEnd {
				if err := rr.ReadEnd(); err != nil {
					return err
				}
				break
			}
		}

		key, err := rr.readAnyString(keyBuf[:0])
		if err != nil {
			if !errors.Is(err, ErrUnexpectedType) {
				return err
			}
			// non-string key, skip the pair
			if _, err := rr.discardValue(); err != nil {
				return err
			}
			if _, err := rr.Discard(true); err != nil {
				return err
			}
			continue
		}

		idx, ok := fields.byName[string(key)]
		if !ok {
			if _, err := rr.Discard(true); err != nil {
				return err
			}
			continue
		}

		fv := v.Field(fields.fields[idx].index)
		var dst interface{}
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			dst = fv.Interface()
		} else {
			dst = fv.Addr().Interface()
		}
		if err := Decode(rr, dst); err != nil {
			rr.drainAggregate(elems-i-2, chunked)
			return err
		}
		seen[idx] = true
	}

	for idx, f := range fields.fields {
		if seen[idx] {
			continue
		}
		fv := v.Field(f.index)
		if fv.Kind() == reflect.Ptr {
			continue
		}
		if f.canNull {
			fv.Addr().Interface().(nullable).setNull()
			continue
		}
		return fmt.Errorf("%w: missing field %q for %s", ErrUnsupportedConversion, f.name, v.Type())
	}
	return nil
}
