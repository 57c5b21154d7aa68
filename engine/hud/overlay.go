package hud

import "sync"

// overlay is the implementation of the Overlay interface.
type overlay struct {
	mu       sync.Mutex
	info     bool
	reticle  bool
	onChange func(info, reticle bool)
}

// Overlay tracks the visibility of the informational overlay and the aim reticle.
type Overlay interface {
	// InfoVisible reports whether the informational overlay is shown.
	//
	// Returns:
	//   - bool: true if shown
	InfoVisible() bool

	// ReticleVisible reports whether the aim reticle is shown.
	//
	// Returns:
	//   - bool: true if shown
	ReticleVisible() bool

	// Show sets both visibilities at once.
	//
	// Parameters:
	//   - info: show the informational overlay
	//   - reticle: show the aim reticle
	Show(info, reticle bool)
}

var _ Overlay = &overlay{}

// NewOverlay creates an Overlay with the informational overlay shown and the reticle hidden.
//
// Parameters:
//   - options: functional options to configure the overlay
//
// Returns:
//   - Overlay: the new overlay
func NewOverlay(options ...OverlayBuilderOption) Overlay {
	o := &overlay{info: true}
	for _, opt := range options {
		opt(o)
	}
	return o
}

func (o *overlay) InfoVisible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.info
}

func (o *overlay) ReticleVisible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reticle
}

func (o *overlay) Show(info, reticle bool) {
	o.mu.Lock()
	changed := o.info != info || o.reticle != reticle
	o.info = info
	o.reticle = reticle
	cb := o.onChange
	o.mu.Unlock()

	if changed && cb != nil {
		cb(info, reticle)
	}
}
