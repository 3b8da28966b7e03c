// Package binval interprets small byte slices as fixed-width numeric values
// for display in the inspector panel.
package binval

import (
	"encoding/binary"
	"math"
	"strings"
)

// Interpretation holds every decoding of the bytes at one offset.
// Fields are only meaningful when the corresponding Ok flag is set; a field
// is unavailable when fewer bytes remain than its width needs.
type Interpretation struct {
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	I8  int8
	I16 int16
	I32 int32
	I64 int64
	F32 float32
	F64 float64

	OkU8  bool
	OkU16 bool
	OkU32 bool
	OkU64 bool
	OkF32 bool
	OkF64 bool
}

// Interpret decodes data with the given byte order. data is the byte slice
// starting at the offset of interest; short slices produce partial results.
func Interpret(data []byte, order binary.ByteOrder) Interpretation {
	var out Interpretation

	if len(data) >= 1 {
		out.U8 = data[0]
		out.I8 = int8(data[0])
		out.OkU8 = true
	}
	if len(data) >= 2 {
		out.U16 = order.Uint16(data)
		out.I16 = int16(out.U16)
		out.OkU16 = true
	}
	if len(data) >= 4 {
		out.U32 = order.Uint32(data)
		out.I32 = int32(out.U32)
		out.F32 = math.Float32frombits(out.U32)
		out.OkU32 = true
		out.OkF32 = true
	}
	if len(data) >= 8 {
		out.U64 = order.Uint64(data)
		out.I64 = int64(out.U64)
		out.F64 = math.Float64frombits(out.U64)
		out.OkU64 = true
		out.OkF64 = true
	}
	return out
}

// ASCIIPreview renders bytes as printable ASCII, substituting '.' for
// everything outside the printable range. The selection inspector uses this.
func ASCIIPreview(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if IsPrintable(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// IsPrintable reports whether a byte is printable ASCII.
func IsPrintable(c byte) bool {
	return c >= 0x20 && c < 0x7f
}
