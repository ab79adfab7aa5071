package gif

// Disposal is a per-frame instruction on how to treat the frame's pixels
// before the next frame is drawn.
type Disposal int

const (
	DisposalUnspecified Disposal = iota
	DisposalNone
	DisposalRestoreBackground
	DisposalRestorePrevious
)

func (d Disposal) String() string {
	switch d {
	case DisposalUnspecified:
		return "unspecified"
	case DisposalNone:
		return "none"
	case DisposalRestoreBackground:
		return "restore-background"
	case DisposalRestorePrevious:
		return "restore-previous"
	default:
		return "invalid"
	}
}

// Rect is a redraw rectangle in canvas pixel coordinates, half-open on the
// high edge: [X0,X1) x [Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// noTransparency is the sentinel TransparentIndex carries when a frame has
// no transparent colour. Byte values are 0..255, so any negative value is
// unambiguous.
const noTransparency = -1

// Frame is a single discovered frame: everything the survey pass learned
// about it, plus the offset the decode pass resumes from.
type Frame struct {
	// Offset is the byte position of this frame's image descriptor
	// (the 0x2C separator) in the source window.
	Offset int

	// Displayable is true once this frame's image data sub-blocks have
	// been fully traversed by the survey pass.
	Displayable bool
	// Decoded latches true the first time this frame's pixels have been
	// composited and its opacity captured.
	Decoded bool

	Rect      Rect
	Disposal  Disposal
	Interlace bool

	Transparent      bool
	TransparentIndex int

	// DelayCS is the inter-frame delay in centiseconds.
	DelayCS int

	HasLocalColourTable  bool
	LocalColourTableSize int

	// RedrawRequired is true when this frame's disposal forces the
	// compositor to redraw a region beyond the frame's own rectangle on
	// the frame that follows it.
	RedrawRequired bool

	// Opaque is the opacity hint latched after the first decode of this
	// frame.
	Opaque bool
}

func newFrame(offset int) Frame {
	return Frame{
		Offset:           offset,
		Disposal:         DisposalUnspecified,
		TransparentIndex: noTransparency,
		DelayCS:          100,
	}
}
