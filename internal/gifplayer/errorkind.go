package gifplayer

import (
	"github.com/pspoerri/gifdecode/internal/compositor"
	"github.com/pspoerri/gifdecode/internal/gif"
)

// ErrorKind is the closed set of outcomes the façade ever reports. Internal
// packages keep their own status enums; mapGifStatus and mapCompositorStatus
// are the only places that translate those down to this set, mirroring how
// the teacher's cmd/ layer maps internal errors to process exit codes rather
// than leaking them directly.
type ErrorKind int

const (
	KindOK ErrorKind = iota
	// KindWorking means a DataScan call advanced the survey but the stream
	// has not yet reached its trailer; more data may still extend it.
	KindWorking
	// KindInsufficientData means DataScan could not make progress at all
	// with the bytes given; the caller must supply more before retrying.
	KindInsufficientData
	// KindInsufficientFrameData is the kind mapGifStatus gives
	// gif.StatusInsufficientData, for a frame's image data running out
	// during decode-pass re-parsing. No operation currently returns it:
	// DataScan handles that status itself, and the decode pass never
	// reports it (an LZW read that runs short while compositing is
	// reported as KindFrameDataError).
	KindInsufficientFrameData
	// KindFrameDataError means corruption local to one frame: a bad LZW
	// code, a malformed local colour table.
	KindFrameDataError
	// KindDataError means corruption in the container itself: bad magic,
	// an impossible logical screen descriptor, or a frame count abusive
	// enough to be treated as malformed.
	KindDataError
	// KindInsufficientMemory means the bitmap capability failed to
	// allocate or grow the canvas.
	KindInsufficientMemory
	// KindFrameNoDisplay means the requested frame index exists but its
	// image data has not yet been fully surveyed.
	KindFrameNoDisplay
	// KindEndOfFrame is the success outcome of FrameDecode: the frame's
	// LZW stream ran cleanly to its end-of-information code. Distinct
	// from KindOK, which every other operation returns on success.
	KindEndOfFrame
	// KindFrameInvalid means the requested frame index is out of the
	// surveyed range.
	KindFrameInvalid
	// KindAnimationComplete means FramePrepare was asked for the next
	// frame of a finite-loop animation that has already played its last
	// loop.
	KindAnimationComplete
)

func (k ErrorKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindWorking:
		return "working"
	case KindInsufficientData:
		return "insufficient-data"
	case KindInsufficientFrameData:
		return "insufficient-frame-data"
	case KindFrameDataError:
		return "frame-data-error"
	case KindDataError:
		return "data-error"
	case KindInsufficientMemory:
		return "insufficient-memory"
	case KindFrameNoDisplay:
		return "frame-no-display"
	case KindEndOfFrame:
		return "end-of-frame"
	case KindFrameInvalid:
		return "frame-invalid"
	case KindAnimationComplete:
		return "animation-complete"
	default:
		return "invalid"
	}
}

func mapGifStatus(st gif.Status) ErrorKind {
	switch st {
	case gif.StatusOK:
		return KindOK
	case gif.StatusInsufficientData:
		return KindInsufficientFrameData
	case gif.StatusFrameDataError:
		return KindFrameDataError
	case gif.StatusDataError, gif.StatusFrameCountExceeded:
		return KindDataError
	case gif.StatusFrameNotDisplayable:
		return KindFrameNoDisplay
	case gif.StatusBadFrameIndex:
		return KindFrameInvalid
	default:
		return KindDataError
	}
}

func mapCompositorStatus(st compositor.Status) ErrorKind {
	switch st {
	case compositor.StatusOK:
		return KindOK
	case compositor.StatusNoMem:
		return KindInsufficientMemory
	case compositor.StatusBadFrameIndex:
		return KindFrameInvalid
	case compositor.StatusFrameDataError:
		return KindFrameDataError
	default:
		return KindFrameDataError
	}
}
