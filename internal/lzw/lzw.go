// Package lzw decodes GIF-flavoured LZW compressed image data: a 1-byte
// minimum code size followed by a chain of length-prefixed data sub-blocks.
//
// This is not compress/lzw's GIF mode by design: the decoder here exposes a
// pull-style, resumable API that can be fed a sub-block chain in pieces as
// the source buffer grows, and a map-mode entry point that writes straight
// into a caller-supplied RGBA buffer through a palette, skipping transparent
// entries. compress/lzw offers neither.
package lzw

import "fmt"

// Status is the result of a decode step. Unlike an error, it is a closed set
// the caller is expected to switch on; StatusOK and StatusOKEOD are not
// failures.
type Status int

const (
	// StatusOK means the call produced output and the stream can continue.
	StatusOK Status = iota
	// StatusOKEOD means the end-of-information code was consumed; the
	// frame's pixel data is exhausted and no more will be produced.
	StatusOKEOD
	// StatusNoData means a sub-block needs more bytes than are currently
	// available in the source window. The caller should retry once more
	// bytes have been appended to the window; no output already produced
	// is invalidated.
	StatusNoData
	// StatusNoMem means an internal buffer could not grow to the size the
	// stream demands.
	StatusNoMem
	// StatusEOICode is the low-level signal that the end-of-information
	// code was just read off the bitstream. Decode and DecodeMap turn this
	// into StatusOKEOD; it is exposed for callers operating one code at a
	// time.
	StatusEOICode
	// StatusBadICode means the very first code after a clear (or the start
	// of the stream) was not a literal.
	StatusBadICode
	// StatusBadCode means a code referenced a dictionary entry that does
	// not exist and is not the "KwKwK" self-reference case.
	StatusBadCode
	// StatusBadParam means the decoder was constructed or reset with
	// invalid parameters.
	StatusBadParam
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOKEOD:
		return "ok-eod"
	case StatusNoData:
		return "no-data"
	case StatusNoMem:
		return "no-mem"
	case StatusEOICode:
		return "eoi-code"
	case StatusBadICode:
		return "bad-icode"
	case StatusBadCode:
		return "bad-code"
	case StatusBadParam:
		return "bad-param"
	default:
		return fmt.Sprintf("lzw.Status(%d)", int(s))
	}
}

const (
	// maxDictSize is the dictionary capacity: 12-bit codes, 4096 entries.
	maxDictSize = 4096
	// maxCodeWidth is the widest a code can ever grow to.
	maxCodeWidth = 12
	// MinCodeSizeMax is the largest minimum code size the container parser
	// should accept before handing bytes to a Decoder; GIF allows 2..11.
	MinCodeSizeMax = 11
	// MinCodeSizeMin is the smallest accepted minimum code size.
	MinCodeSizeMin = 2
)

// entry is one dictionary slot. prefix of -1 marks a root (single-byte)
// entry; suffix is the last byte the entry expands to.
type entry struct {
	prefix int32
	suffix byte
	length int32
}

// Window is a borrowed, append-only view over a growing GIF byte stream.
// The decoder never retains a Window past the call it was passed to; bytes
// 0..len(Data) at the time of a call are assumed stable, but Data itself may
// be a different backing array on the next call.
type Window struct {
	Data []byte
}

// bitReader pulls LSB-first bits out of a GIF sub-block chain, transparently
// hopping sub-block boundaries. It never returns partially consumed state:
// if a byte isn't available yet, position is left exactly where a future
// call with more data can resume.
type bitReader struct {
	win          *Window
	pos          int  // next byte to consume from win.Data
	subRemaining int   // bytes left in the current sub-block payload
	atEnd        bool  // saw the zero-length terminator sub-block
	bitBuf       uint32
	bitCount     uint
}

func (r *bitReader) nextByte() (byte, bool) {
	if r.atEnd {
		return 0, false
	}
	for r.subRemaining == 0 {
		if r.pos >= len(r.win.Data) {
			return 0, false
		}
		n := r.win.Data[r.pos]
		if n == 0 {
			r.atEnd = true
			r.pos++
			return 0, false
		}
		r.subRemaining = int(n)
		r.pos++
	}
	if r.pos >= len(r.win.Data) {
		return 0, false
	}
	b := r.win.Data[r.pos]
	r.pos++
	r.subRemaining--
	return b, true
}

func (r *bitReader) readCode(width int) (int, Status) {
	for r.bitCount < uint(width) {
		b, ok := r.nextByte()
		if !ok {
			return 0, StatusNoData
		}
		r.bitBuf |= uint32(b) << r.bitCount
		r.bitCount += 8
	}
	code := int(r.bitBuf & ((1 << uint(width)) - 1))
	r.bitBuf >>= uint(width)
	r.bitCount -= uint(width)
	return code, StatusOK
}

// Decoder streams GIF LZW index bytes out of a sub-block chain. It is
// reusable across frames via Reset to avoid re-allocating the dictionary.
type Decoder struct {
	bits        bitReader
	minCodeSize int
	clearCode   int
	eoiCode     int
	nextCode    int
	codeWidth   int
	prevCode    int
	table       [maxDictSize]entry
	scratch     []byte // reused buffer for prefix-chain reconstruction

	pending    []byte // stream/map output not yet delivered to the caller
	pendingPos int     // DecodeMap's read cursor into pending; unused by Decode
	done       bool
}

// NewDecoder creates a decoder positioned at the first sub-block length
// byte of an image data block, minCodeSize bits wide.
func NewDecoder(win *Window, cursor int, minCodeSize int) (*Decoder, Status) {
	d := &Decoder{}
	if st := d.Reset(win, cursor, minCodeSize); st != StatusOK {
		return nil, st
	}
	return d, StatusOK
}

// Reset reinitialises the decoder in place for a new frame's image data,
// reusing its dictionary storage.
func (d *Decoder) Reset(win *Window, cursor int, minCodeSize int) Status {
	if win == nil || cursor < 0 || cursor > len(win.Data) {
		return StatusBadParam
	}
	if minCodeSize < MinCodeSizeMin || minCodeSize > MinCodeSizeMax {
		return StatusBadParam
	}

	d.bits = bitReader{win: win, pos: cursor}
	d.minCodeSize = minCodeSize
	d.clearCode = 1 << minCodeSize
	d.eoiCode = d.clearCode + 1
	d.done = false
	d.pending = d.pending[:0]
	d.pendingPos = 0

	for i := 0; i < d.clearCode; i++ {
		d.table[i] = entry{prefix: -1, suffix: byte(i), length: 1}
	}
	d.resetCodeState()
	return StatusOK
}

func (d *Decoder) resetCodeState() {
	d.nextCode = d.eoiCode + 1
	d.codeWidth = d.minCodeSize + 1
	d.prevCode = -1
}

// Cursor returns the decoder's current byte offset into the window it was
// constructed or reset with. After a clean end-of-data it points at (or
// just past) the sub-block terminator.
func (d *Decoder) Cursor() int {
	return d.bits.pos
}

// Done reports whether the end-of-information code has been consumed.
func (d *Decoder) Done() bool {
	return d.done
}

func (d *Decoder) stringFor(code int, buf []byte) []byte {
	e := &d.table[code]
	n := int(e.length)
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	idx := n - 1
	cur := code
	for cur >= 0 {
		e := &d.table[cur]
		buf[idx] = e.suffix
		idx--
		cur = int(e.prefix)
	}
	return buf
}

// addEntry appends a new dictionary entry for prefix+suffix, growing the
// code width when the newly occupied slot fills the current width. A full
// dictionary silently stops growing rather than erroring, tolerating
// malformed encoders that never emit a clear.
func (d *Decoder) addEntry(prefix int, suffix byte) {
	if d.nextCode >= maxDictSize {
		return
	}
	d.table[d.nextCode] = entry{
		prefix: int32(prefix),
		suffix: suffix,
		length: d.table[prefix].length + 1,
	}
	d.nextCode++
	if d.nextCode == (1<<uint(d.codeWidth)) && d.codeWidth < maxCodeWidth {
		d.codeWidth++
	}
}

// decodeOneCode reads and expands exactly one code, appending any produced
// index bytes to d.pending.
func (d *Decoder) decodeOneCode() Status {
	code, status := d.bits.readCode(d.codeWidth)
	if status != StatusOK {
		return status
	}

	switch {
	case code == d.clearCode:
		d.resetCodeState()
		return StatusOK

	case code == d.eoiCode:
		return StatusEOICode

	case d.prevCode < 0:
		if code >= d.clearCode {
			return StatusBadICode
		}
		d.pending = append(d.pending, byte(code))
		d.prevCode = code
		return StatusOK

	case code < d.nextCode:
		d.scratch = d.stringFor(code, d.scratch)
		d.pending = append(d.pending, d.scratch...)
		d.addEntry(d.prevCode, d.scratch[0])
		d.prevCode = code
		return StatusOK

	case code == d.nextCode:
		d.scratch = d.stringFor(d.prevCode, d.scratch)
		first := d.scratch[0]
		d.pending = append(d.pending, d.scratch...)
		d.pending = append(d.pending, first)
		d.addEntry(d.prevCode, first)
		d.prevCode = code
		return StatusOK

	default:
		return StatusBadCode
	}
}

// Decode runs stream mode: it decodes as many codes as the currently
// available source bytes allow and returns a read-only view of the newly
// produced index bytes. The slice is only valid until the next call to
// Decode or DecodeMap.
func (d *Decoder) Decode() ([]byte, Status) {
	if d.done {
		return nil, StatusOKEOD
	}
	d.pending = d.pending[:0]
	for {
		switch status := d.decodeOneCode(); status {
		case StatusOK:
			continue
		case StatusEOICode:
			d.done = true
			return d.pending, StatusOKEOD
		default:
			return d.pending, status
		}
	}
}

// DecodeMap runs map mode: it writes up to len(dst) pixels into dst, mapping
// each decoded index byte through palette. A byte equal to transparentIndex
// is skipped (the destination pixel is left untouched) unless
// transparentIndex is out of byte range, in which case every index is
// written. It returns the number of destination positions advanced, which
// includes skipped-but-untouched positions. Once dst is full it reads on past
// any clear codes, so an end-of-information code that directly follows the
// last pixel is reported by the same call as StatusOKEOD.
func (d *Decoder) DecodeMap(dst []uint32, palette *[256]uint32, transparentIndex int) (int, Status) {
	written := 0
	for written < len(dst) {
		if d.pendingPos >= len(d.pending) {
			if d.done {
				return written, StatusOKEOD
			}
			d.pending = d.pending[:0]
			d.pendingPos = 0
			switch status := d.decodeOneCode(); status {
			case StatusOK:
				// d.pending now holds freshly produced bytes, if any.
			case StatusEOICode:
				d.done = true
				if len(d.pending) == 0 {
					return written, StatusOKEOD
				}
			default:
				return written, status
			}
		}
		for d.pendingPos < len(d.pending) && written < len(dst) {
			idx := int(d.pending[d.pendingPos])
			d.pendingPos++
			if transparentIndex > 0xFF || idx != transparentIndex {
				dst[written] = palette[idx]
			}
			written++
		}
	}
	for !d.done && d.pendingPos >= len(d.pending) {
		d.pending, d.pendingPos = d.pending[:0], 0
		switch status := d.decodeOneCode(); status {
		case StatusOK:
			// a clear code yields nothing; any bytes produced stay pending
		case StatusEOICode:
			d.done = true
			return written, StatusOKEOD
		case StatusNoData:
			return written, StatusOK
		default:
			return written, status
		}
	}
	return written, StatusOK
}
