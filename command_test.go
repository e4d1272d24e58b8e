package resp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvasari/resp"
)

func TestWriteCommand(t *testing.T) {
	for _, c := range []struct {
		name     string
		cmd      string
		args     []interface{}
		expected string
	}{
		{
			name:     "NoArgs",
			cmd:      "PING",
			expected: "*1\r\n$4\r\nPING\r\n",
		},
		{
			name:     "Strings",
			cmd:      "SET",
			args:     []interface{}{"key", "42"},
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$2\r\n42\r\n",
		},
		{
			name:     "Bytes",
			cmd:      "SET",
			args:     []interface{}{[]byte("key"), []byte{0x00, 0xff}},
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$2\r\n\x00\xff\r\n",
		},
		{
			name:     "Ints",
			cmd:      "EXPIRE",
			args:     []interface{}{"key", 3600},
			expected: "*3\r\n$6\r\nEXPIRE\r\n$3\r\nkey\r\n$4\r\n3600\r\n",
		},
		{
			name:     "NegativeInt",
			cmd:      "INCRBY",
			args:     []interface{}{"key", int64(-17)},
			expected: "*3\r\n$6\r\nINCRBY\r\n$3\r\nkey\r\n$3\r\n-17\r\n",
		},
		{
			name:     "Uint",
			cmd:      "GETRANGE",
			args:     []interface{}{"key", uint8(0), uint64(18446744073709551615)},
			expected: "*4\r\n$8\r\nGETRANGE\r\n$3\r\nkey\r\n$1\r\n0\r\n$20\r\n18446744073709551615\r\n",
		},
		{
			name:     "Float64",
			cmd:      "INCRBYFLOAT",
			args:     []interface{}{"key", 1.5},
			expected: "*3\r\n$11\r\nINCRBYFLOAT\r\n$3\r\nkey\r\n$3\r\n1.5\r\n",
		},
		{
			name:     "Float32",
			cmd:      "INCRBYFLOAT",
			args:     []interface{}{"key", float32(0.25)},
			expected: "*3\r\n$11\r\nINCRBYFLOAT\r\n$3\r\nkey\r\n$4\r\n0.25\r\n",
		},
		{
			name:     "FloatWholeNumber",
			cmd:      "INCRBYFLOAT",
			args:     []interface{}{"key", 10.0},
			expected: "*3\r\n$11\r\nINCRBYFLOAT\r\n$3\r\nkey\r\n$2\r\n10\r\n",
		},
		{
			name:     "Bools",
			cmd:      "BITFIELD",
			args:     []interface{}{"key", true, false},
			expected: "*4\r\n$8\r\nBITFIELD\r\n$3\r\nkey\r\n$1\r\n1\r\n$1\r\n0\r\n",
		},
		{
			name:     "EmptyString",
			cmd:      "SET",
			args:     []interface{}{"key", ""},
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$0\r\n\r\n",
		},
		{
			name:     "NestedArgs",
			cmd:      "MSET",
			args:     []interface{}{[]interface{}{"a", 1}, []interface{}{"b", 2}},
			expected: "*5\r\n$4\r\nMSET\r\n$1\r\na\r\n$1\r\n1\r\n$1\r\nb\r\n$1\r\n2\r\n",
		},
		{
			name:     "DeeplyNestedArgs",
			cmd:      "XADD",
			args:     []interface{}{"stream", "*", []interface{}{[]interface{}{"field", "value"}}},
			expected: "*5\r\n$4\r\nXADD\r\n$6\r\nstream\r\n$1\r\n*\r\n$5\r\nfield\r\n$5\r\nvalue\r\n",
		},
		{
			name:     "EmptyNestedArgs",
			cmd:      "DEL",
			args:     []interface{}{"key", []interface{}{}},
			expected: "*2\r\n$3\r\nDEL\r\n$3\r\nkey\r\n",
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			var b bytes.Buffer
			rw := resp.NewWriter(&b)
			require.NoError(t, rw.WriteCommand(c.cmd, c.args...))
			require.Equal(t, c.expected, b.String())
		})
	}
}

func TestWriteCommandUnsupportedArg(t *testing.T) {
	for _, c := range []struct {
		name string
		args []interface{}
	}{
		{"TopLevel", []interface{}{"key", struct{}{}}},
		{"Nested", []interface{}{"key", []interface{}{"ok", make(chan int)}}},
		{"Nil", []interface{}{nil}},
		{"Map", []interface{}{map[string]string{"a": "b"}}},
	} {
		t.Run(c.name, func(t *testing.T) {
			var b bytes.Buffer
			rw := resp.NewWriter(&b)
			err := rw.WriteCommand("SET", c.args...)
			require.ErrorIs(t, err, resp.ErrUnsupportedArgType)

			// nothing may have been written, not even the header
			require.Empty(t, b.String())

			require.NoError(t, rw.WriteCommand("PING"))
			require.Equal(t, "*1\r\n$4\r\nPING\r\n", b.String())
		})
	}
}
