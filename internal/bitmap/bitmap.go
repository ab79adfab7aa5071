// Package bitmap defines the capability table through which the decoder
// obtains canvas storage, and a pooled default implementation backed by
// image.RGBA for callers with no allocator of their own.
package bitmap

// Capability is a small table of callbacks supplied by the embedder at
// construction. Create, Destroy and GetBuffer are required; the rest are
// optional hooks and may be left nil. Handle is opaque to the decoder: it is
// only ever passed back to the same Capability that produced it.
type Capability struct {
	// Create allocates w*h 32-bit RGBA pixels and returns an opaque handle.
	// ok is false on allocation failure.
	Create func(w, h int) (handle any, ok bool)

	// Destroy releases a handle returned by Create.
	Destroy func(handle any)

	// GetBuffer returns the w*h*4 mutable byte storage backing handle, byte
	// order red, green, blue, alpha. The slice is stable for the handle's
	// lifetime.
	GetBuffer func(handle any) []byte

	// SetOpaque advises that the current composite has no transparent
	// pixels. May be nil.
	SetOpaque func(handle any, opaque bool)

	// TestOpaque asks whether the composite is currently fully opaque. May
	// be nil.
	TestOpaque func(handle any) bool

	// Modified fires after every successful decode. May be nil.
	Modified func(handle any)
}
