package formatter

import (
	"strings"
	"testing"

	"github.com/eticeo/key-figures/pkg/counter"
)

func TestToMarkdown(t *testing.T) {
	r := Report{
		Source: "course.html",
		Elements: []ElementReport{
			{
				ElementID:  "number_7_1_1",
				Extraction: counter.Extract("1234 students"),
				Ticks:      103,
				Final:      "1234 students",
				Present:    true,
			},
			{
				ElementID:  "number_7_1_2",
				Extraction: counter.Extract("<span>N/A</span>"),
			},
			{
				ElementID:  "number_7_2_1",
				Extraction: counter.Extract("<b>85</b>\n  %"),
				Ticks:      86,
			},
		},
	}

	md := ToMarkdown(r)

	for _, want := range []string{
		"# Key Figures Animation Report",
		"Source: `course.html`",
		"- **Number elements**: 3",
		"- **Animated**: 2",
		"- **Skipped (no number)**: 1",
		"- **Longest animation**: 103 ticks",
		"| [number_7_1_1](#number_7_1_1) | 1 | 1 | 1 | 103 |",
		"| [number_7_2_1](#number_7_2_1) | 2 | 1 | 1 | 86 |",
		"### number_7_1_2\n\n- **Original**: `<span>N/A</span>`\n- Skipped: no number to animate",
		"- **Template**: `##regex0## students`",
		"- **Final**: `1234 students`",
		"| `##regex0##` | 1234 | 12 |",
		"- **Original**: `<b>85</b> %`",
		"- **Final**: element left the page",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown does not contain %q\n%s", want, md)
		}
	}
}

func TestToMarkdownEmpty(t *testing.T) {
	md := ToMarkdown(Report{})

	if !strings.Contains(md, "- **Number elements**: 0") {
		t.Errorf("markdown = %q", md)
	}
	if strings.Contains(md, "## Elements") {
		t.Error("empty report lists elements")
	}
}

func TestToMarkdownForeignID(t *testing.T) {
	md := ToMarkdown(Report{Elements: []ElementReport{
		{ElementID: "hero|count", Extraction: counter.Extract("5"), Ticks: 6, Present: true, Final: "5"},
	}})

	if !strings.Contains(md, `| [hero\|count](#herocount) | - | - | 1 | 6 |`) {
		t.Errorf("markdown = %q", md)
	}
}

func TestToAnchor(t *testing.T) {
	tests := map[string]string{
		"number_7_1_1": "number_7_1_1",
		"Hero Count":   "hero-count",
		"(no id)":      "no-id",
	}
	for in, want := range tests {
		if got := toAnchor(in); got != want {
			t.Errorf("toAnchor(%q) = %q, want %q", in, got, want)
		}
	}
}
