package lzw

import (
	"bytes"
	"testing"
)

// packSubBlocks bit-packs codes (LSB-first, matching bitReader) using the
// given per-code width, then frames the result into GIF-style length
// prefixed sub-blocks of at most subBlockSize bytes, terminated by a
// zero-length sub-block.
func packSubBlocks(codes []int, widths []int, subBlockSize int) []byte {
	var bitBuf uint32
	var bitCount uint
	var raw []byte

	for i, code := range codes {
		w := uint(widths[i])
		bitBuf |= uint32(code) << bitCount
		bitCount += w
		for bitCount >= 8 {
			raw = append(raw, byte(bitBuf&0xFF))
			bitBuf >>= 8
			bitCount -= 8
		}
	}
	if bitCount > 0 {
		raw = append(raw, byte(bitBuf&0xFF))
	}

	var out []byte
	for len(raw) > 0 {
		n := subBlockSize
		if n <= 0 || n > len(raw) {
			n = len(raw)
		}
		out = append(out, byte(n))
		out = append(out, raw[:n]...)
		raw = raw[n:]
	}
	out = append(out, 0x00)
	return out
}

func TestDecodeLiterals(t *testing.T) {
	// minCodeSize=2: clear=4, eoi=5, width starts at 3.
	codes := []int{4, 0, 1, 2, 5}
	widths := []int{3, 3, 3, 3, 3}
	data := packSubBlocks(codes, widths, 255)

	win := &Window{Data: data}
	d, st := NewDecoder(win, 0, 2)
	if st != StatusOK {
		t.Fatalf("NewDecoder: %v", st)
	}

	out, st := d.Decode()
	if st != StatusOKEOD {
		t.Fatalf("Decode status = %v, want StatusOKEOD", st)
	}
	if !bytes.Equal(out, []byte{0, 1, 2}) {
		t.Fatalf("Decode output = %v, want [0 1 2]", out)
	}
}

func TestDecodeWidthGrowsAtDictionaryBoundary(t *testing.T) {
	// minCodeSize=2: clear=4, eoi=5, nextCode starts at 6.
	// Code 0 (post-clear literal) adds no entry. Code 1 adds entry 6.
	// Code 2 adds entry 7, bumping nextCode to 8 == 1<<3, so codeWidth
	// grows to 4 bits before the EOI code is transmitted.
	codes := []int{4, 0, 1, 2, 5}
	widths := []int{3, 3, 3, 3, 4}
	data := packSubBlocks(codes, widths, 255)

	win := &Window{Data: data}
	d, st := NewDecoder(win, 0, 2)
	if st != StatusOK {
		t.Fatalf("NewDecoder: %v", st)
	}

	out, st := d.Decode()
	if st != StatusOKEOD {
		t.Fatalf("Decode status = %v, want StatusOKEOD", st)
	}
	if !bytes.Equal(out, []byte{0, 1, 2}) {
		t.Fatalf("Decode output = %v, want [0 1 2]", out)
	}
}

func TestDecodeKwKwKAndTruncation(t *testing.T) {
	// minCodeSize=2. Encoding of indices [0,0,0]:
	//   CLEAR, literal 0, code 6 (KwKwK self-reference), EOI.
	// Hand-verified bit packing: sub-block {0x84, 0x0B}, terminator 0x00.
	full := []byte{0x02, 0x84, 0x0B, 0x00}

	// Start with only the sub-block length and its first byte present;
	// the decoder must report NoData without losing the output already
	// produced, then pick up exactly where it left off once the rest of
	// the buffer arrives.
	truncated := append([]byte(nil), full[:2]...)

	win := &Window{Data: truncated}
	d, st := NewDecoder(win, 0, 2)
	if st != StatusOK {
		t.Fatalf("NewDecoder: %v", st)
	}

	out, st := d.Decode()
	if st != StatusNoData {
		t.Fatalf("first Decode status = %v, want StatusNoData", st)
	}
	if !bytes.Equal(out, []byte{0}) {
		t.Fatalf("first Decode output = %v, want [0]", out)
	}

	// The embedder appends the rest of a prefix-stable buffer and retries.
	win.Data = full
	out, st = d.Decode()
	if st != StatusOKEOD {
		t.Fatalf("second Decode status = %v, want StatusOKEOD", st)
	}
	if !bytes.Equal(out, []byte{0, 0}) {
		t.Fatalf("second Decode output = %v, want [0 0]", out)
	}

	if got := d.Cursor(); got != 3 || full[got] != 0x00 {
		t.Fatalf("Cursor() = %d, want 3 pointing at the terminator", got)
	}
}

func TestDecodeBadCode(t *testing.T) {
	// minCodeSize=2: clear=4, eoi=5, nextCode starts at 6. A code of 7
	// sent before the dictionary has grown past 6 references a slot that
	// does not exist and isn't the KwKwK case (7 != nextCode).
	codes := []int{4, 0, 7}
	widths := []int{3, 3, 3}
	data := packSubBlocks(codes, widths, 255)

	d, st := NewDecoder(&Window{Data: data}, 0, 2)
	if st != StatusOK {
		t.Fatalf("NewDecoder: %v", st)
	}

	out, st := d.Decode()
	if st != StatusBadCode {
		t.Fatalf("Decode status = %v, want StatusBadCode", st)
	}
	if !bytes.Equal(out, []byte{0}) {
		t.Fatalf("Decode output before the bad code = %v, want [0]", out)
	}
}

func TestDecodeBadICode(t *testing.T) {
	// The very first code after a clear must be a literal; 6 (== the
	// initial dictionary pointer) is not.
	codes := []int{4, 6}
	widths := []int{3, 3}
	data := packSubBlocks(codes, widths, 255)

	d, st := NewDecoder(&Window{Data: data}, 0, 2)
	if st != StatusOK {
		t.Fatalf("NewDecoder: %v", st)
	}

	_, st = d.Decode()
	if st != StatusBadICode {
		t.Fatalf("Decode status = %v, want StatusBadICode", st)
	}
}

func TestNewDecoderBadParam(t *testing.T) {
	win := &Window{Data: []byte{0x00}}
	if _, st := NewDecoder(win, 0, 1); st != StatusBadParam {
		t.Errorf("minCodeSize=1: status = %v, want StatusBadParam", st)
	}
	if _, st := NewDecoder(win, 0, 12); st != StatusBadParam {
		t.Errorf("minCodeSize=12: status = %v, want StatusBadParam", st)
	}
	if _, st := NewDecoder(nil, 0, 2); st != StatusBadParam {
		t.Errorf("nil window: status = %v, want StatusBadParam", st)
	}
}

func TestDecodeMapTransparencySkip(t *testing.T) {
	codes := []int{4, 0, 1, 2, 5}
	widths := []int{3, 3, 3, 3, 3}
	data := packSubBlocks(codes, widths, 255)

	d, st := NewDecoder(&Window{Data: data}, 0, 2)
	if st != StatusOK {
		t.Fatalf("NewDecoder: %v", st)
	}

	var palette [256]uint32
	palette[0] = 0xAABBCCFF
	palette[1] = 0x11223344
	palette[2] = 0x55667788

	dst := []uint32{0xDEADBEEF, 0xDEADBEEF, 0xDEADBEEF}
	n, st := d.DecodeMap(dst, &palette, 1) // index 1 is transparent
	if st != StatusOKEOD {
		t.Fatalf("DecodeMap status = %v, want StatusOKEOD", st)
	}
	if n != 3 {
		t.Fatalf("DecodeMap wrote %d pixels, want 3", n)
	}
	want := []uint32{0xAABBCCFF, 0xDEADBEEF, 0x55667788}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %#x, want %#x", i, dst[i], want[i])
		}
	}
}

func TestDecodeMapNoTransparency(t *testing.T) {
	codes := []int{4, 0, 1, 5}
	widths := []int{3, 3, 3, 3}
	data := packSubBlocks(codes, widths, 255)

	d, st := NewDecoder(&Window{Data: data}, 0, 2)
	if st != StatusOK {
		t.Fatalf("NewDecoder: %v", st)
	}

	var palette [256]uint32
	palette[0] = 0x01020304
	palette[1] = 0x05060708

	dst := make([]uint32, 2)
	n, st := d.DecodeMap(dst, &palette, 0x1FF) // out of byte range: never skip
	if st != StatusOKEOD {
		t.Fatalf("DecodeMap status = %v, want StatusOKEOD", st)
	}
	if n != 2 {
		t.Fatalf("DecodeMap wrote %d pixels, want 2", n)
	}
	if dst[0] != 0x01020304 || dst[1] != 0x05060708 {
		t.Fatalf("dst = %#x, want [0x01020304 0x05060708]", dst)
	}
}

func TestStatusString(t *testing.T) {
	for s := StatusOK; s <= StatusBadParam; s++ {
		if s.String() == "" {
			t.Errorf("Status(%d).String() is empty", int(s))
		}
	}
}
