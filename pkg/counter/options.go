package counter

import "time"

// Default selector of the elements animated by Init.
var (
	DefaultContainerClasses = []string{"block_key_figures", "block"}
	DefaultNumberClasses    = []string{"col-number"}
)

// Option configures Init and NewDriver.
type Option func(*options)

type options struct {
	delay            time.Duration
	containerClasses []string
	numberClasses    []string
	onFrame          func(Frame)
	logger           Logger
}

func newOptions(opts []Option) options {
	o := options{
		delay:            DefaultDelay,
		containerClasses: DefaultContainerClasses,
		numberClasses:    DefaultNumberClasses,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDelay sets the pause between ticks. Negative values are treated as zero.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.delay = d
	}
}

// WithSelector sets the classes of the block container and of the number elements
// inside it. Empty slices keep the defaults.
func WithSelector(containerClasses, numberClasses []string) Option {
	return func(o *options) {
		if len(containerClasses) > 0 {
			o.containerClasses = containerClasses
		}
		if len(numberClasses) > 0 {
			o.numberClasses = numberClasses
		}
	}
}

// WithFrameHook calls fn with every rendered frame.
func WithFrameHook(fn func(Frame)) Option {
	return func(o *options) {
		o.onFrame = fn
	}
}

// WithLogger sets the logger used by the driver.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
