// Package resp implements a client-side codec for the Redis RESP protocol.
//
// The package has two halves. The lower half are the Reader and Writer types,
// which parse and emit single RESP2/RESP3 protocol values and know nothing
// about commands or replies. The upper half builds on them: WriteCommand
// serializes a command invocation as an array of bulk strings, and Decode
// consumes exactly one reply from a Reader into a caller-chosen Go value,
// dispatching on both the wire type and the target type.
//
// Decode targets include all integer and float types, strings and byte
// slices, structs (decoded from the flat field-value lists Redis returns for
// hashes and streams), slices, maps and the wrapper types Optional, OrErr,
// OrFullErr and FixedBuf. The Value type accepts any reply shape and
// materializes it as a tagged tree; trees obtained this way can be recycled
// with Release to keep decode loops allocation-steady.
//
// All structs can be reused via the corresponding Reset method and duplex
// connections are supported using a ReadWriter type that wraps a Reader and a
// Writer in a single allocation.
//
// Methods that take []byte to write (e.g. WriteSimpleString) are optimized to
// allow the compiler to avoid allocations when passing a string converted to
// a []byte as parameter (e.g. WriteSimpleString([]byte("OK")) should not
// allocate).
package resp
