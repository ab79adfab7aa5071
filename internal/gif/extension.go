package gif

import "encoding/binary"

// parseExtension dispatches on the extension label at data[pos+1] (pos is
// the 0x21 introducer) and returns the cursor just past its terminator.
func (s *Stream) parseExtension(data []byte, pos int) (int, Status) {
	if pos+1 >= len(data) {
		return pos, StatusInsufficientData
	}

	switch data[pos+1] {
	case 0xF9:
		gc, next, st := parseGraphicControl(data, pos)
		if st != StatusOK {
			return pos, st
		}
		s.pendingGC = &gc
		return next, StatusOK

	case 0xFF:
		return s.parseApplicationExtension(data, pos)

	case 0xFE: // comment: no sized preamble, straight to sub-blocks
		next, st := skipGenericExtension(data, pos, false)
		return next, st

	case 0x01: // plain text: a sized preamble, then sub-blocks
		next, st := skipGenericExtension(data, pos, true)
		return next, st

	default: // unknown extensions follow the same shape as plain text
		next, st := skipGenericExtension(data, pos, true)
		return next, st
	}
}

// parseGraphicControl reads a Graphic Control Extension (label 0xF9):
// introducer, label, block size (4), packed byte, 16-bit delay, transparent
// index, block terminator.
func parseGraphicControl(data []byte, pos int) (graphicControl, int, Status) {
	var gc graphicControl
	need := pos + 8
	if len(data) < need {
		return gc, pos, StatusInsufficientData
	}
	if data[pos+2] != 4 {
		return gc, pos, StatusDataError
	}
	if data[pos+7] != 0 {
		return gc, pos, StatusDataError
	}

	packed := data[pos+3]
	disp := int((packed >> 2) & 0x07)
	if disp == 4 {
		disp = int(DisposalRestorePrevious) // quirk disposal alias
	}
	if disp > int(DisposalRestorePrevious) {
		disp = int(DisposalUnspecified)
	}

	gc.disposal = Disposal(disp)
	gc.transparent = packed&0x01 != 0
	gc.delayCS = int(binary.LittleEndian.Uint16(data[pos+4 : pos+6]))
	gc.transparentIndex = int(data[pos+6])
	return gc, pos + 8, StatusOK
}

// parseApplicationExtension reads an Application Extension (label 0xFF). It
// recognises the NETSCAPE2.0 looping extension and updates LoopMax from its
// sub-block; any other identifier's sub-blocks are skipped unexamined.
func (s *Stream) parseApplicationExtension(data []byte, pos int) (int, Status) {
	if pos+2 >= len(data) {
		return pos, StatusInsufficientData
	}
	blockSize := int(data[pos+2])
	need := pos + 3 + blockSize
	if len(data) < need {
		return pos, StatusInsufficientData
	}
	isNetscape := blockSize == 11 && string(data[pos+3:pos+3+blockSize]) == "NETSCAPE2.0"

	cur := need
	for {
		if cur >= len(data) {
			return pos, StatusInsufficientData
		}
		n := int(data[cur])
		if n == 0 {
			cur++
			break
		}
		need := cur + 1 + n
		if len(data) < need {
			return pos, StatusInsufficientData
		}
		if isNetscape && n == 3 && data[cur+1] == 0x01 {
			s.LoopMax = int(binary.LittleEndian.Uint16(data[cur+2 : cur+4]))
		}
		cur = need
	}
	return cur, StatusOK
}

// skipGenericExtension drains an extension's sub-block chain without
// inspecting its payload. hasSizedPreamble covers the plain-text and
// unknown-extension shape: a block-size byte immediately after the label,
// followed by that many preamble bytes, before the standard sub-blocks
// begin. Comment extensions have no such preamble.
func skipGenericExtension(data []byte, pos int, hasSizedPreamble bool) (int, Status) {
	cur := pos + 2
	if hasSizedPreamble {
		if cur >= len(data) {
			return pos, StatusInsufficientData
		}
		bs := int(data[cur])
		need := cur + 1 + bs
		if len(data) < need {
			return pos, StatusInsufficientData
		}
		cur = need
	}

	next, st := skipSubBlockChain(data, cur)
	if st != StatusOK {
		return pos, st
	}
	return next, StatusOK
}

// skipSubBlockChain walks a standard length-prefixed sub-block chain,
// returning the cursor just past its zero-length terminator.
func skipSubBlockChain(data []byte, cur int) (int, Status) {
	for {
		if cur >= len(data) {
			return cur, StatusInsufficientData
		}
		n := int(data[cur])
		if n == 0 {
			return cur + 1, StatusOK
		}
		need := cur + 1 + n
		if len(data) < need {
			return cur, StatusInsufficientData
		}
		cur = need
	}
}
