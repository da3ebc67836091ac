// Package carousel implements a horizontally scrolling slide strip with
// autoplay, arrow and dot navigation, drag gestures and width-based
// breakpoints. Engine holds the position state and is free of I/O; Model
// adapts it to Bubble Tea.
package carousel

import (
	"math"
	"sort"
	"time"
)

// SwipeThreshold is the fraction of a slide width a drag must travel to commit
const SwipeThreshold = 0.2

// captureThreshold is how far (in cells) a press must move before the drag
// claims the pointer for itself
const captureThreshold = 1

const epsilon = 1e-9

// Direction is the outcome of a completed drag
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// DotPosition places the dot bar relative to the strip
type DotPosition string

const (
	DotsInside  DotPosition = "inside"
	DotsOutside DotPosition = "outside"
)

// Rule overrides the visible slide count at or below a viewport width
type Rule struct {
	Breakpoint   int
	SlidesToShow float64
	ShowDots     *bool
}

// DotStyle is purely cosmetic
type DotStyle struct {
	Size        int
	ActiveSize  int
	Color       string
	ActiveColor string
	Position    DotPosition
}

// Options configures a carousel
type Options struct {
	AutoPlay         bool
	AutoPlayInterval time.Duration
	ShowDots         bool
	ShowArrows       bool
	SlidesToShow     float64
	Responsive       []Rule
	DotStyle         DotStyle
}

// DefaultOptions returns the stock configuration
func DefaultOptions() Options {
	return Options{
		AutoPlayInterval: 5 * time.Second,
		ShowDots:         true,
		ShowArrows:       true,
		SlidesToShow:     1,
		DotStyle: DotStyle{
			Size:        1,
			ActiveSize:  1,
			Color:       "241",
			ActiveColor: "99",
			Position:    DotsInside,
		},
	}
}

type dragState struct {
	active   bool
	captured bool
	startX   int
	currentX int
}

// Engine is the carousel position state machine
type Engine struct {
	opts  Options
	rules []Rule

	total   int
	current int

	viewport  int
	container int

	slidesToShow float64
	showDots     bool

	hovered bool
	drag    dragState
}

// NewEngine creates an engine for total slides positioned at slide 0
func NewEngine(opts Options, total int) *Engine {
	if opts.SlidesToShow <= 0 {
		opts.SlidesToShow = 1
	}
	if opts.AutoPlayInterval <= 0 {
		opts.AutoPlayInterval = DefaultOptions().AutoPlayInterval
	}
	rules := make([]Rule, len(opts.Responsive))
	copy(rules, opts.Responsive)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Breakpoint > rules[j].Breakpoint
	})

	e := &Engine{
		opts:  opts,
		rules: rules,
	}
	e.resolve()
	e.SetTotal(total)
	return e
}

// resolve applies the first rule (in descending breakpoint order) whose
// breakpoint covers the viewport. An unknown viewport uses the defaults.
func (e *Engine) resolve() {
	e.slidesToShow = e.opts.SlidesToShow
	e.showDots = e.opts.ShowDots
	if e.viewport > 0 {
		for _, r := range e.rules {
			if r.Breakpoint >= e.viewport {
				if r.SlidesToShow > 0 {
					e.slidesToShow = r.SlidesToShow
				}
				if r.ShowDots != nil {
					e.showDots = *r.ShowDots
				}
				break
			}
		}
	}
	e.current = e.clamp(e.current)
}

// Resize records the viewport width used for breakpoint selection and the
// container width used to size slides
func (e *Engine) Resize(viewport, container int) {
	if viewport < 0 {
		viewport = 0
	}
	if container < 0 {
		container = 0
	}
	e.viewport = viewport
	e.container = container
	e.resolve()
}

// SetTotal replaces the slide count, keeping the position in range
func (e *Engine) SetTotal(n int) {
	if n < 0 {
		n = 0
	}
	e.total = n
	if n == 0 {
		e.drag = dragState{}
	}
	e.current = e.clamp(e.current)
}

func (e *Engine) Total() int              { return e.total }
func (e *Engine) Current() int            { return e.current }
func (e *Engine) SlidesToShow() float64   { return e.slidesToShow }
func (e *Engine) Options() Options        { return e.opts }
func (e *Engine) AutoPlay() bool          { return e.opts.AutoPlay }
func (e *Engine) Interval() time.Duration { return e.opts.AutoPlayInterval }
func (e *Engine) Paused() bool            { return e.hovered }
func (e *Engine) Dragging() bool          { return e.drag.active }
func (e *Engine) Captured() bool          { return e.drag.active && e.drag.captured }

// Animating is false while a drag follows the pointer one-to-one
func (e *Engine) Animating() bool {
	return !e.drag.active
}

// ShowDots reports whether the dot bar is rendered at the current width
func (e *Engine) ShowDots() bool {
	return e.showDots && e.total > 0
}

// ShowArrows reports whether arrows are rendered
func (e *Engine) ShowArrows() bool {
	return e.opts.ShowArrows && e.total > 0
}

// MaxSlide is the last index a group of slides can start at
func (e *Engine) MaxSlide() int {
	m := math.Ceil(float64(e.total) - e.slidesToShow - epsilon)
	if m < 0 {
		return 0
	}
	return int(m)
}

func (e *Engine) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if last := e.MaxSlide(); i > last {
		return last
	}
	return i
}

// Next advances one slide, wrapping to 0 after MaxSlide
func (e *Engine) Next() {
	if e.current >= e.MaxSlide() {
		e.current = 0
		return
	}
	e.current++
}

// Prev retreats one slide, wrapping to MaxSlide before 0
func (e *Engine) Prev() {
	if e.current <= 0 {
		e.current = e.MaxSlide()
		return
	}
	e.current--
}

// GoTo jumps to index, clamped into [0, MaxSlide]
func (e *Engine) GoTo(index int) {
	e.current = e.clamp(index)
}

// DotCount is the number of dot groups
func (e *Engine) DotCount() int {
	if e.total == 0 {
		return 0
	}
	return int(math.Ceil(float64(e.total)/e.slidesToShow - epsilon))
}

// ActiveDot is the group containing the current slide
func (e *Engine) ActiveDot() int {
	return int(math.Floor(float64(e.current)/e.slidesToShow + epsilon))
}

// GoToDot jumps to the first slide of group i
func (e *Engine) GoToDot(i int) {
	e.GoTo(int(math.Floor(float64(i)*e.slidesToShow + epsilon)))
}

// SlideWidth is the container width divided by the visible slide count
func (e *Engine) SlideWidth() float64 {
	if e.container <= 0 || e.slidesToShow <= 0 {
		return 0
	}
	return float64(e.container) / e.slidesToShow
}

// Offset is the strip translation in percent of the container width
func (e *Engine) Offset() float64 {
	offset := -float64(e.current) * 100 / e.slidesToShow
	return offset - e.swipePercentage()
}

func (e *Engine) swipePercentage() float64 {
	sw := e.SlideWidth()
	if !e.drag.active || sw == 0 {
		return 0
	}
	return float64(e.drag.startX-e.drag.currentX) / sw * (100 / e.slidesToShow)
}

// Press starts a drag at x
func (e *Engine) Press(x int) {
	e.drag = dragState{active: true, startX: x, currentX: x}
}

// Move updates the drag position and reports whether the drag has captured
// the pointer
func (e *Engine) Move(x int) bool {
	if !e.drag.active {
		return false
	}
	e.drag.currentX = x
	if !e.drag.captured {
		d := x - e.drag.startX
		if d < 0 {
			d = -d
		}
		e.drag.captured = d > captureThreshold
	}
	return e.drag.captured
}

// Release ends the drag, committing one step when it travelled past the
// swipe threshold
func (e *Engine) Release() Direction {
	if !e.drag.active {
		return None
	}
	diff := float64(e.drag.startX - e.drag.currentX)
	e.drag = dragState{}

	if math.Abs(diff) > e.SlideWidth()*SwipeThreshold {
		if diff > 0 {
			e.Next()
			return Forward
		}
		e.Prev()
		return Backward
	}
	return None
}

// CancelDrag drops an in-flight drag without moving
func (e *Engine) CancelDrag() {
	e.drag = dragState{}
}

// Hover records pointer presence. Leaving cancels an in-flight drag.
func (e *Engine) Hover(inside bool) {
	e.hovered = inside
	if !inside {
		e.CancelDrag()
	}
}

// Tick is one autoplay step. It reports whether the carousel advanced.
func (e *Engine) Tick() bool {
	if !e.opts.AutoPlay || e.hovered || e.drag.active {
		return false
	}
	e.Next()
	return true
}
