package counter

import "time"

// DefaultDelay is the pause between two ticks of an animation.
const DefaultDelay = 10 * time.Millisecond

// Element is a live page element whose content the driver replaces on every tick.
type Element interface {
	ID() string
	InnerHTML() string
	SetInnerHTML(markup string) error
}

// Document looks elements up by id.
type Document interface {
	// ElementByID reports false when no element carries id (anymore).
	ElementByID(id string) (Element, bool)
}

// Logger receives diagnostic messages. A nil Logger means silent operation.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Driver plays animations on a Document through a Scheduler.
type Driver struct {
	doc     Document
	sched   Scheduler
	delay   time.Duration
	onFrame func(Frame)
	logger  Logger
}

// NewDriver returns a driver with the given options applied over the defaults.
func NewDriver(doc Document, sched Scheduler, opts ...Option) *Driver {
	o := newOptions(opts)
	return &Driver{
		doc:     doc,
		sched:   sched,
		delay:   o.delay,
		onFrame: o.onFrame,
		logger:  o.logger,
	}
}

// Start renders the first tick of the animation right away and keeps rescheduling
// itself until every number reached its target.
func (d *Driver) Start(s State) {
	d.tick(s)
}

func (d *Driver) tick(s State) {
	next, frame := s.Advance()

	// Looked up on every tick: the element may have left the page since.
	if el, ok := d.doc.ElementByID(frame.ElementID); ok {
		if err := el.SetInnerHTML(frame.Render); err != nil {
			d.warnf("update %s at tick %d: %v", frame.ElementID, frame.Tick, err)
		}
	} else {
		d.debugf("element %s not found at tick %d", frame.ElementID, frame.Tick)
	}

	if d.onFrame != nil {
		d.onFrame(frame)
	}

	if frame.Converged {
		d.debugf("element %s converged after %d ticks", frame.ElementID, frame.Tick)
		return
	}

	d.sched.AfterFunc(d.delay, func() {
		d.tick(next)
	})
}

func (d *Driver) debugf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Debugf(format, args...)
	}
}

func (d *Driver) warnf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Warnf(format, args...)
	}
}
