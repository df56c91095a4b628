package counter

// Page is a Document that can also list the number elements of the key figures blocks.
type Page interface {
	Document
	// Descendants returns the elements carrying every class in classes that sit inside
	// an element carrying every class in ancestorClasses, in document order.
	Descendants(ancestorClasses, classes []string) []Element
}

// Animation pairs an element with what was extracted from it at activation.
type Animation struct {
	ElementID  string
	Extraction Extraction
}

// Init discovers the number elements currently on page and starts one independent
// animation per element that contains numbers. Elements without numbers are left exactly
// as rendered. It returns every discovered element, animated or not, in document order.
//
// Elements added to the page afterwards are not picked up.
func Init(page Page, sched Scheduler, opts ...Option) []Animation {
	o := newOptions(opts)
	driver := NewDriver(page, sched, opts...)

	elements := page.Descendants(o.containerClasses, o.numberClasses)
	animations := make([]Animation, 0, len(elements))

	for _, el := range elements {
		ex := Extract(el.InnerHTML())
		animations = append(animations, Animation{ElementID: el.ID(), Extraction: ex})

		if ex.Empty() {
			driver.debugf("element %s has no number to animate", el.ID())
			continue
		}
		driver.Start(NewState(el.ID(), ex))
	}

	return animations
}
