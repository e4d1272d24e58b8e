package resp

import (
	"fmt"
	"strconv"
)

// WriteCommand writes a command invocation as a RESP array of blob strings, the framing Redis expects for requests.
//
// Each argument is written as a single blob string. Supported argument types are string, []byte, all integer types,
// float32, float64 and bool (formatted as 0 or 1). An argument may also be a []interface{}, whose elements are
// flattened into the surrounding command, which is useful for commands that take variable-length argument groups.
//
// Arguments are validated before anything is written, so a call that fails with ErrUnsupportedArgType never emits a
// partial frame. Content never causes a failure, only an argument of an unsupported type does.
func (rw *Writer) WriteCommand(name string, args ...interface{}) error {
	n, err := countArgs(args)
	if err != nil {
		return err
	}
	if err := rw.writeAggregateHeader(TypeArray, int64(1+n)); err != nil {
		return err
	}
	if err := rw.writeBlob(TypeBlobString, []byte(name)); err != nil {
		return err
	}
	return rw.writeArgs(args)
}

func countArgs(args []interface{}) (int, error) {
	var n int
	for _, arg := range args {
		switch a := arg.(type) {
		case string, []byte,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, bool:
			n++
		case []interface{}:
			m, err := countArgs(a)
			if err != nil {
				return 0, err
			}
			n += m
		default:
			return 0, fmt.Errorf("%w: %T", ErrUnsupportedArgType, arg)
		}
	}
	return n, nil
}

func (rw *Writer) writeArgs(args []interface{}) error {
	for _, arg := range args {
		var err error
		switch a := arg.(type) {
		case string:
			err = rw.writeBlob(TypeBlobString, []byte(a))
		case []byte:
			err = rw.writeBlob(TypeBlobString, a)
		case int:
			err = rw.writeArgInt(int64(a))
		case int8:
			err = rw.writeArgInt(int64(a))
		case int16:
			err = rw.writeArgInt(int64(a))
		case int32:
			err = rw.writeArgInt(int64(a))
		case int64:
			err = rw.writeArgInt(a)
		case uint:
			err = rw.writeArgUint(uint64(a))
		case uint8:
			err = rw.writeArgUint(uint64(a))
		case uint16:
			err = rw.writeArgUint(uint64(a))
		case uint32:
			err = rw.writeArgUint(uint64(a))
		case uint64:
			err = rw.writeArgUint(a)
		case float32:
			err = rw.writeArgFloat(float64(a), 32)
		case float64:
			err = rw.writeArgFloat(a, 64)
		case bool:
			if a {
				err = rw.writeBlob(TypeBlobString, []byte("1"))
			} else {
				err = rw.writeBlob(TypeBlobString, []byte("0"))
			}
		case []interface{}:
			err = rw.writeArgs(a)
		default:
			err = fmt.Errorf("%w: %T", ErrUnsupportedArgType, arg)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (rw *Writer) writeArgInt(n int64) error {
	var tmp [20]byte
	return rw.writeBlob(TypeBlobString, strconv.AppendInt(tmp[:0], n, 10))
}

func (rw *Writer) writeArgUint(n uint64) error {
	var tmp [20]byte
	return rw.writeBlob(TypeBlobString, strconv.AppendUint(tmp[:0], n, 10))
}

func (rw *Writer) writeArgFloat(f float64, bits int) error {
	var tmp [32]byte
	return rw.writeBlob(TypeBlobString, strconv.AppendFloat(tmp[:0], f, 'f', -1, bits))
}
