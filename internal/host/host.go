// Package host is the boundary between the layout engine and a rendering host
// that measures the container and animates items into place.
//
// A Session holds the host-owned inputs. Every change recomputes the layout
// from scratch and hands the Animator a Frame describing where each item moves.
// Debouncing rapid changes, such as a window being dragged, is left to the host.
package host

import (
	"sync"

	"github.com/piwi3910/packlayout/internal/engine"
	"github.com/piwi3910/packlayout/internal/model"
)

// Transition moves one item from its previous rectangle to a new one.
// From is nil when the item enters the layout.
type Transition struct {
	ID   string
	From *model.Rect
	To   model.Rect
}

// Entering reports whether the item was not placed in the previous frame.
func (t Transition) Entering() bool { return t.From == nil }

// Moved reports whether the rectangle changed.
func (t Transition) Moved() bool { return t.From != nil && *t.From != t.To }

// Frame is one layout update.
type Frame struct {
	Result      model.PackingResult
	Transitions []Transition // In placement order
	Exited      []string     // IDs placed in the previous frame but not in this one
}

// Animator receives every recomputed frame.
type Animator interface {
	Animate(Frame)
}

// AnimatorFunc adapts a function to the Animator interface.
type AnimatorFunc func(Frame)

// Animate calls f(frame).
func (f AnimatorFunc) Animate(frame Frame) { f(frame) }

// Session tracks the inputs of one layout and relays results to an Animator.
// It is safe for concurrent use and the Animator may call back into the
// Session. Frames are delivered one at a time in the order the changes were
// applied; a change made while a frame is being delivered returns at once and
// its frame follows when the current one is done.
type Session struct {
	engine   *engine.Engine
	animator Animator

	mu        sync.Mutex
	items     []model.PackableItem
	algorithm model.Algorithm
	opts      model.PackingOptions
	previous  []model.PackedRect
	last      *model.PackingResult

	pending    []Frame
	delivering bool
}

// NewSession creates a Session. A nil engine uses engine.New(nil); a nil
// animator discards frames.
func NewSession(e *engine.Engine, animator Animator) *Session {
	if e == nil {
		e = engine.New(nil)
	}
	if animator == nil {
		animator = AnimatorFunc(func(Frame) {})
	}
	return &Session{
		engine:    e,
		animator:  animator,
		algorithm: model.AlgorithmMaxRects,
	}
}

// SetItems replaces the item list and relays out.
func (s *Session) SetItems(items []model.PackableItem) {
	s.update(func() {
		s.items = append([]model.PackableItem(nil), items...)
	})
}

// SetAlgorithm switches the algorithm and relays out.
func (s *Session) SetAlgorithm(alg model.Algorithm) {
	s.update(func() {
		s.algorithm = alg
	})
}

// SetOptions replaces padding, gap and sort order. The container size is
// only ever taken from Resize.
func (s *Session) SetOptions(opts model.PackingOptions) {
	s.update(func() {
		s.opts.Padding = opts.Padding
		s.opts.Gap = opts.Gap
		s.opts.SortBy = opts.SortBy
	})
}

// Resize records the measured container size and relays out.
func (s *Session) Resize(width, height float64) {
	s.update(func() {
		s.opts.ContainerWidth = width
		s.opts.ContainerHeight = height
	})
}

// Layout returns the most recent result, or false before the container has
// been measured.
func (s *Session) Layout() (model.PackingResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return model.PackingResult{}, false
	}
	return *s.last, true
}

// update applies change, recomputes the layout and queues the frame. The
// first caller to find the queue idle drains it with the lock released.
func (s *Session) update(change func()) {
	s.mu.Lock()
	change()
	if !measured(s.opts) {
		s.mu.Unlock()
		return
	}

	result := s.engine.Pack(s.algorithm, s.items, s.opts)
	s.pending = append(s.pending, diff(s.previous, result))
	s.previous = result.Packed
	s.last = &result

	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		frame := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		s.animator.Animate(frame)
		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

// measured reports whether the host has supplied a usable container size.
func measured(opts model.PackingOptions) bool {
	return opts.ContainerWidth > 0 && opts.ContainerHeight > 0
}

// diff pairs each new placement with its previous rectangle.
func diff(previous []model.PackedRect, result model.PackingResult) Frame {
	before := make(map[string]model.Rect, len(previous))
	for _, p := range previous {
		before[p.ID] = p.Rect
	}

	frame := Frame{
		Result:      result,
		Transitions: make([]Transition, 0, len(result.Packed)),
		Exited:      []string{},
	}
	placed := make(map[string]bool, len(result.Packed))
	for _, p := range result.Packed {
		t := Transition{ID: p.ID, To: p.Rect}
		if r, ok := before[p.ID]; ok {
			r := r
			t.From = &r
		}
		frame.Transitions = append(frame.Transitions, t)
		placed[p.ID] = true
	}
	for _, p := range previous {
		if !placed[p.ID] {
			frame.Exited = append(frame.Exited, p.ID)
		}
	}
	return frame
}
