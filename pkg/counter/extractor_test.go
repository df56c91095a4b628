package counter

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		fragment     string
		wantTemplate string
		wantFigures  []Figure
	}{
		{
			name:         "single number",
			fragment:     "1234 students",
			wantTemplate: "##regex0## students",
			wantFigures:  []Figure{{Token: "##regex0##", Target: 1234, Step: 12}},
		},
		{
			name:         "no number",
			fragment:     "<span>N/A</span>",
			wantTemplate: "<span>N/A</span>",
		},
		{
			name:         "empty fragment",
			fragment:     "",
			wantTemplate: "",
		},
		{
			name:         "two distinct numbers",
			fragment:     "12 courses, 3400 learners",
			wantTemplate: "##regex0## courses, ##regex1## learners",
			wantFigures: []Figure{
				{Token: "##regex0##", Target: 12, Step: 1},
				{Token: "##regex1##", Target: 3400, Step: 34},
			},
		},
		{
			name:         "identical runs share one token",
			fragment:     "42 and 42",
			wantTemplate: "##regex0## and ##regex0##",
			wantFigures:  []Figure{{Token: "##regex0##", Target: 42, Step: 1}},
		},
		{
			name:         "discovery index survives a shared run",
			fragment:     "42 and 42 and 7",
			wantTemplate: "##regex0## and ##regex0## and ##regex2##",
			wantFigures: []Figure{
				{Token: "##regex0##", Target: 42, Step: 1},
				{Token: "##regex2##", Target: 7, Step: 1},
			},
		},
		{
			name:         "leading zeros parse as decimal",
			fragment:     "007",
			wantTemplate: "##regex0##",
			wantFigures:  []Figure{{Token: "##regex0##", Target: 7, Step: 1}},
		},
		{
			name:         "digits inside markup attributes are extracted too",
			fragment:     `<i class="fa-2x"></i>150`,
			wantTemplate: `<i class="fa-##regex0##x"></i>##regex1##`,
			wantFigures: []Figure{
				{Token: "##regex0##", Target: 2, Step: 1},
				{Token: "##regex1##", Target: 150, Step: 1},
			},
		},
		{
			name:         "short run replaces its digits inside a longer one",
			fragment:     "5 15",
			wantTemplate: "##regex0## 1##regex0##",
			wantFigures:  []Figure{{Token: "##regex0##", Target: 5, Step: 1}},
		},
		{
			name:         "tokens already placed are not rewritten",
			fragment:     "10 0",
			wantTemplate: "##regex0## ##regex1##",
			wantFigures: []Figure{
				{Token: "##regex0##", Target: 10, Step: 1},
				{Token: "##regex1##", Target: 0, Step: 1},
			},
		},
		{
			name:         "run out of int64 range is left as text",
			fragment:     "99999999999999999999 and 5",
			wantTemplate: "99999999999999999999 and ##regex1##",
			wantFigures:  []Figure{{Token: "##regex1##", Target: 5, Step: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.fragment)

			if got.Original != tt.fragment {
				t.Errorf("Extract().Original = %q, want %q", got.Original, tt.fragment)
			}
			if got.Template != tt.wantTemplate {
				t.Errorf("Extract().Template = %q, want %q", got.Template, tt.wantTemplate)
			}
			if !reflect.DeepEqual(got.Figures, tt.wantFigures) {
				t.Errorf("Extract().Figures = %+v, want %+v", got.Figures, tt.wantFigures)
			}
			if got.Empty() != (len(tt.wantFigures) == 0) {
				t.Errorf("Extract().Empty() = %v, want %v", got.Empty(), len(tt.wantFigures) == 0)
			}
		})
	}
}

func TestExtractionMaps(t *testing.T) {
	ex := Extract("250 tiles, 10000 views")

	wantTargets := map[string]int64{"##regex0##": 250, "##regex1##": 10000}
	if got := ex.Targets(); !reflect.DeepEqual(got, wantTargets) {
		t.Errorf("Targets() = %v, want %v", got, wantTargets)
	}

	wantSteps := map[string]int64{"##regex0##": 2, "##regex1##": 100}
	if got := ex.Steps(); !reflect.DeepEqual(got, wantSteps) {
		t.Errorf("Steps() = %v, want %v", got, wantSteps)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		target int64
		want   int64
	}{
		{0, 1},
		{1, 1},
		{50, 1},
		{99, 1},
		{100, 1},
		{199, 1},
		{200, 2},
		{250, 2},
		{1234, 12},
		{10000, 100},
	}

	for _, tt := range tests {
		if got := Step(tt.target); got != tt.want {
			t.Errorf("Step(%d) = %d, want %d", tt.target, got, tt.want)
		}
	}

	for target := int64(0); target <= 5000; target++ {
		want := max(1, target/100)
		if got := Step(target); got != want {
			t.Fatalf("Step(%d) = %d, want %d", target, got, want)
		}
	}
}
