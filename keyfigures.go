package keyfigures

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eticeo/key-figures/pkg/counter"
	"github.com/eticeo/key-figures/pkg/dom"
	"github.com/eticeo/key-figures/pkg/editform"
	"github.com/eticeo/key-figures/pkg/formatter"
	"github.com/eticeo/key-figures/pkg/page"
)

// Options configures a run.
type Options struct {
	Source           string        // page file path or http(s) URL
	Delay            time.Duration // pause between ticks, 0 or less = counter.DefaultDelay
	ContainerClasses []string      // empty = counter.DefaultContainerClasses
	NumberClasses    []string      // empty = counter.DefaultNumberClasses
	Client           *page.Client  // nil = page.NewClient defaults
	OnFrame          func(counter.Frame)
	Logger           Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the outcome of Run.
type Result struct {
	HTML     string           // page after every animation converged
	Report   formatter.Report // per element summary
	Markdown string           // Report formatted as markdown
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run loads the page, starts the counter animation of every key figures number on it,
// plays them to the end on a single event loop and returns the final page with a report.
// Cancelling ctx tears the page down: pending ticks are dropped and ctx.Err() is returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Delay <= 0 {
		opts.Delay = counter.DefaultDelay
	}

	doc, err := loadDocument(ctx, &opts)
	if err != nil {
		return nil, err
	}

	ticks := make(map[string]int64)
	counterOpts := []counter.Option{
		counter.WithDelay(opts.Delay),
		counter.WithSelector(opts.ContainerClasses, opts.NumberClasses),
		counter.WithFrameHook(func(f counter.Frame) {
			ticks[f.ElementID] = f.Tick
			if opts.OnFrame != nil {
				opts.OnFrame(f)
			}
		}),
	}
	if opts.Logger != nil {
		counterOpts = append(counterOpts, counter.WithLogger(opts.Logger))
	}

	loop := counter.NewLoop()
	opts.logInfo("Starting counters...")
	animations := counter.Init(documentPage{doc}, loop, counterOpts...)
	opts.logInfo("Found %d number element(s)", len(animations))

	if err := loop.Run(ctx); err != nil {
		return nil, fmt.Errorf("run animations: %w", err)
	}

	report := formatter.Report{Source: opts.Source}
	for _, a := range animations {
		el := formatter.ElementReport{
			ElementID:  a.ElementID,
			Extraction: a.Extraction,
			Ticks:      ticks[a.ElementID],
		}
		if live, ok := doc.ElementByID(a.ElementID); ok {
			el.Present = true
			el.Final = live.InnerHTML()
		} else if !a.Extraction.Empty() {
			opts.logWarn("Element %s left the page before its animation ended", a.ElementID)
		}
		report.Elements = append(report.Elements, el)
	}
	opts.logInfo("Animated %d element(s), longest run %d tick(s)", report.Animated(), report.MaxTicks())

	return &Result{
		HTML:     doc.String(),
		Report:   report,
		Markdown: formatter.ToMarkdown(report),
	}, nil
}

// FormResult contains the outcome of ApplyForm.
type FormResult struct {
	HTML    string
	Handled []string // changes that matched a rule
}

// ApplyForm loads a settings form page, runs the visibility rules once as when the form
// opens, then applies each change in order. A change is "id=value": the control's value is
// set to value, then the rule attached to id runs. A bare "id" reruns the rule on the
// current value.
func ApplyForm(ctx context.Context, opts Options, changes ...string) (*FormResult, error) {
	doc, err := loadDocument(ctx, &opts)
	if err != nil {
		return nil, err
	}

	editform.Open(doc)

	res := &FormResult{}
	for _, change := range changes {
		id, value, hasValue := strings.Cut(change, "=")
		id = strings.TrimSpace(id)

		if hasValue {
			el, ok := doc.ElementByID(id)
			if !ok {
				opts.logWarn("No element %q in the form", id)
				continue
			}
			if !el.SetValue(value) {
				opts.logWarn("No option %q in %q", value, id)
				continue
			}
		}

		if !editform.HandleChange(doc, id) {
			opts.logWarn("No form rule for %q", id)
			continue
		}
		res.Handled = append(res.Handled, change)
	}

	res.HTML = doc.String()
	return res, nil
}

func loadDocument(ctx context.Context, opts *Options) (*dom.Document, error) {
	opts.logInfo("Loading page %s...", opts.Source)
	data, err := page.Load(ctx, opts.Client, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	return doc, nil
}

// documentPage exposes a dom.Document to the counter engine.
type documentPage struct {
	doc *dom.Document
}

func (p documentPage) ElementByID(id string) (counter.Element, bool) {
	el, ok := p.doc.ElementByID(id)
	if !ok {
		return nil, false
	}
	return el, true
}

func (p documentPage) Descendants(ancestorClasses, classes []string) []counter.Element {
	found := p.doc.Descendants(ancestorClasses, classes)
	out := make([]counter.Element, len(found))
	for i, el := range found {
		out[i] = el
	}
	return out
}
