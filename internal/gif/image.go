package gif

import (
	"encoding/binary"

	"github.com/pspoerri/gifdecode/internal/lzw"
)

// parseImageDescriptor surveys one frame: the image descriptor (10 bytes),
// its local colour table if flagged, and its image data sub-block chain
// (walked but not LZW-decoded). pos is the offset of the 0x2C separator,
// which becomes the frame's recorded Offset.
func (s *Stream) parseImageDescriptor(data []byte, pos int) (Frame, int, Status) {
	need := pos + 10
	if len(data) < need {
		return Frame{}, pos, StatusInsufficientData
	}

	left := int(binary.LittleEndian.Uint16(data[pos+1 : pos+3]))
	top := int(binary.LittleEndian.Uint16(data[pos+3 : pos+5]))
	w := int(binary.LittleEndian.Uint16(data[pos+5 : pos+7]))
	h := int(binary.LittleEndian.Uint16(data[pos+7 : pos+9]))
	packed := data[pos+9]
	hasLCT := packed&0x80 != 0
	interlace := packed&0x40 != 0
	lctExp := int(packed & 0x07)

	cur := pos + 10
	lctSize := 0
	if hasLCT {
		lctSize = 1 << uint(lctExp+1)
		need = cur + lctSize*3
		if len(data) < need {
			return Frame{}, pos, StatusInsufficientData
		}
		cur = need // content re-read by the decode pass; survey only skips it
	}

	if cur >= len(data) {
		return Frame{}, pos, StatusInsufficientData
	}
	minCodeSize := int(data[cur])
	if minCodeSize < lzw.MinCodeSizeMin || minCodeSize > lzw.MinCodeSizeMax {
		return Frame{}, pos, StatusFrameDataError
	}
	cur++

	cur, st := skipSubBlockChain(data, cur)
	if st != StatusOK {
		return Frame{}, pos, st
	}

	f := newFrame(pos)
	f.Rect = Rect{X0: left, Y0: top, X1: left + w, Y1: top + h}
	f.Interlace = interlace
	f.HasLocalColourTable = hasLCT
	f.LocalColourTableSize = lctSize

	if s.pendingGC != nil {
		f.Disposal = s.pendingGC.disposal
		f.Transparent = s.pendingGC.transparent
		f.TransparentIndex = s.pendingGC.transparentIndex
		f.DelayCS = s.pendingGC.delayCS
		f.RedrawRequired = f.Disposal == DisposalRestoreBackground || f.Disposal == DisposalRestorePrevious
		s.pendingGC = nil
	}
	f.Displayable = true

	return f, cur, StatusOK
}

// Geometry is what the decode pass hands the compositor for one frame:
// its rectangle, interlace flag, and the colour table (local or global)
// that applies to it.
type Geometry struct {
	Rect      Rect
	Interlace bool
	Palette   *ColourTable
}

// PrepareFrameDecode re-parses the frame at index idx from its recorded
// offset and returns an lzw.Decoder positioned at the start of its image
// data, ready for stream or map mode. The returned decoder is owned by the
// Stream and is only valid until the next call to PrepareFrameDecode.
func (s *Stream) PrepareFrameDecode(idx int) (Geometry, *lzw.Decoder, Status) {
	if idx < 0 || idx >= len(s.Frames) {
		return Geometry{}, nil, StatusBadFrameIndex
	}
	rec := &s.Frames[idx]
	if !rec.Displayable {
		return Geometry{}, nil, StatusFrameNotDisplayable
	}

	data := s.window.Data
	pos := rec.Offset
	packed := data[pos+9]
	hasLCT := packed&0x80 != 0
	lctExp := int(packed & 0x07)

	cur := pos + 10
	palette := &s.Global
	if hasLCT {
		n := 1 << uint(lctExp+1)
		s.Local = readColourTable(data, cur, n)
		cur += n * 3
		palette = &s.Local
	}

	minCodeSize := int(data[cur])
	cur++

	if s.lzwCtx == nil {
		ctx, st := lzw.NewDecoder(&s.window, cur, minCodeSize)
		if st != lzw.StatusOK {
			return Geometry{}, nil, StatusFrameDataError
		}
		s.lzwCtx = ctx
	} else if st := s.lzwCtx.Reset(&s.window, cur, minCodeSize); st != lzw.StatusOK {
		return Geometry{}, nil, StatusFrameDataError
	}

	return Geometry{Rect: rec.Rect, Interlace: rec.Interlace, Palette: palette}, s.lzwCtx, StatusOK
}
