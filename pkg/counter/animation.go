package counter

import "strconv"

// State is the state of one running animation. It is a plain value: every tick derives
// a new State from the previous one and nothing is shared between animations.
type State struct {
	ElementID  string
	Tick       int64
	Extraction Extraction
}

// NewState returns the state of an animation that has not rendered any tick yet.
func NewState(elementID string, ex Extraction) State {
	return State{ElementID: elementID, Extraction: ex}
}

// Frame is what one tick renders.
type Frame struct {
	ElementID string
	Tick      int64
	Render    string
	Values    map[string]int64 // displayed value per token
	Converged bool
}

// Advance moves the animation one tick forward and returns the new state with the
// frame to display. A number is still running while tick*step <= target; once past it,
// its displayed value is clamped to the target. The frame is converged only when every
// number is clamped.
func (s State) Advance() (State, Frame) {
	next := s
	next.Tick++

	frame := Frame{
		ElementID: s.ElementID,
		Tick:      next.Tick,
		Values:    make(map[string]int64, len(s.Extraction.Figures)),
		Converged: true,
	}

	for _, f := range s.Extraction.Figures {
		value := f.Target
		// tick*step <= target, without overflowing on large targets.
		if next.Tick <= f.Target/f.Step {
			value = next.Tick * f.Step
			frame.Converged = false
		}
		frame.Values[f.Token] = value
	}

	frame.Render = render(s.Extraction.Template, frame.Values)
	return next, frame
}

// render substitutes every token of template with its value in a single pass.
func render(template string, values map[string]int64) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		v, ok := values[token]
		if !ok {
			return token
		}
		return strconv.FormatInt(v, 10)
	})
}
