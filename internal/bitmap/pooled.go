package bitmap

import (
	"image"
	"sync"
)

// poolKey identifies a pool by bitmap dimensions.
type poolKey struct{ w, h int }

// pooledHandle is the handle type vended by NewPooled: the backing image
// plus the opacity flag that SetOpaque writes and TestOpaque reads.
type pooledHandle struct {
	img    *image.RGBA
	opaque bool
}

// pools maps (width, height) to a *sync.Pool of *image.RGBA. In practice a
// decoder only ever requests one or two distinct canvas sizes over its
// lifetime (the size can grow once during survey but rarely more), so the
// map stays tiny.
type pools struct {
	m sync.Map // poolKey -> *sync.Pool
}

func (p *pools) get(w, h int) *image.RGBA {
	key := poolKey{w, h}
	if v, ok := p.m.Load(key); ok {
		if img := v.(*sync.Pool).Get(); img != nil {
			rgba := img.(*image.RGBA)
			clear(rgba.Pix)
			return rgba
		}
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func (p *pools) put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := poolKey{img.Rect.Dx(), img.Rect.Dy()}
	v, _ := p.m.LoadOrStore(key, &sync.Pool{})
	v.(*sync.Pool).Put(img)
}

// NewPooled returns a Capability backed by a pool of *image.RGBA buffers,
// keyed by dimensions, for embedders with no bitmap allocator of their own.
// Every handle it vends is a *pooledHandle; buffers are recycled across
// Destroy/Create pairs of matching size rather than freed and reallocated.
func NewPooled() Capability {
	p := &pools{}
	return Capability{
		Create: func(w, h int) (any, bool) {
			if w <= 0 || h <= 0 {
				return nil, false
			}
			return &pooledHandle{img: p.get(w, h)}, true
		},
		Destroy: func(handle any) {
			h, ok := handle.(*pooledHandle)
			if !ok || h == nil {
				return
			}
			p.put(h.img)
		},
		GetBuffer: func(handle any) []byte {
			h := handle.(*pooledHandle)
			return h.img.Pix
		},
		SetOpaque: func(handle any, opaque bool) {
			handle.(*pooledHandle).opaque = opaque
		},
		TestOpaque: func(handle any) bool {
			return handle.(*pooledHandle).opaque
		},
		Modified: nil,
	}
}
