package counter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	digitRun     = regexp.MustCompile(`[0-9]+`)
	tokenPattern = regexp.MustCompile(`##regex[0-9]+##`)
)

// Figure is one animated number of a fragment: its placeholder token, the value it
// counts up to and the increment applied on every tick.
type Figure struct {
	Token  string
	Target int64
	Step   int64
}

// Extraction is the result of scanning a fragment for numbers.
// It is immutable once built and can be shared by value between ticks.
type Extraction struct {
	Original string   // fragment as rendered by the page
	Template string   // fragment with every extracted number replaced by its token
	Figures  []Figure // in discovery order
}

// Empty reports whether the fragment had nothing to animate.
func (e Extraction) Empty() bool {
	return len(e.Figures) == 0
}

// Targets returns the target value of every token.
func (e Extraction) Targets() map[string]int64 {
	targets := make(map[string]int64, len(e.Figures))
	for _, f := range e.Figures {
		targets[f.Token] = f.Target
	}
	return targets
}

// Steps returns the per-tick increment of every token.
func (e Extraction) Steps() map[string]int64 {
	steps := make(map[string]int64, len(e.Figures))
	for _, f := range e.Figures {
		steps[f.Token] = f.Step
	}
	return steps
}

// Token returns the placeholder used for the digit run found at discovery index i.
func Token(i int) string {
	return fmt.Sprintf("##regex%d##", i)
}

// Extract finds every run of decimal digits in fragment and replaces each distinct run
// with a placeholder token.
//
// Numbers are identified by their literal text, not their position: every occurrence of a
// digit string is replaced by the token of its first discovery, so equal numbers share one
// token and animate together. Replacement is textual, which means a short run also replaces
// the same digits inside a longer run found later ("5 15" animates the trailing 5 of 15).
// Tokens already placed are never rewritten.
func Extract(fragment string) Extraction {
	ex := Extraction{Original: fragment, Template: fragment}

	for i, match := range digitRun.FindAllString(fragment, -1) {
		target, err := strconv.ParseInt(match, 10, 64)
		if err != nil {
			// Out of int64 range, leave it as plain text.
			continue
		}

		token := Token(i)
		template, n := replaceOutsideTokens(ex.Template, match, token)
		if n == 0 {
			// Already covered by an earlier token. Recording a target here would only
			// keep the animation ticking after every visible number has settled
			// ("5 15" converges at tick 6 instead of 16).
			continue
		}

		ex.Template = template
		ex.Figures = append(ex.Figures, Figure{
			Token:  token,
			Target: target,
			Step:   Step(target),
		})
	}

	return ex
}

// replaceOutsideTokens replaces every occurrence of old in s with repl, skipping the
// text of placeholder tokens. It returns the new string and the number of replacements.
func replaceOutsideTokens(s, old, repl string) (string, int) {
	var (
		sb    strings.Builder
		count int
		last  int
	)

	for _, loc := range tokenPattern.FindAllStringIndex(s, -1) {
		segment := s[last:loc[0]]
		count += strings.Count(segment, old)
		sb.WriteString(strings.ReplaceAll(segment, old, repl))
		sb.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}

	segment := s[last:]
	count += strings.Count(segment, old)
	sb.WriteString(strings.ReplaceAll(segment, old, repl))

	return sb.String(), count
}
