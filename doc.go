// Package keyfigures plays the counting-up animation of the "key figures" course block
// on a rendered page and reports what every number element did.
//
// The CLI lives in cmd/key-figures; this root package exposes the same pipeline as a Go
// API so that callers can embed it in their own tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the package is
// named keyfigures:
//
//	import "github.com/eticeo/key-figures" // package keyfigures
//
// # Quick start
//
//	result, err := keyfigures.Run(ctx, keyfigures.Options{
//	    Source: "https://moodle.example.org/course/view.php?id=2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("page.html", []byte(result.HTML), 0644)
//
// Every element matching ".block_key_figures.block .col-number" is animated on its own:
// each run of digits counts up from zero in about one hundred ticks, 10ms apart by
// default. Elements without digits are left untouched.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress messages.
// A *zap.SugaredLogger works as is. A nil Logger silences all output.
//
// # Settings form
//
// [ApplyForm] runs the settings form visibility rules on a form page: only the tile
// sections and rows selected in the "number of blocks" and "number of rows" selects stay
// visible. Hosts embedding the form call [editform.Open] and [editform.HandleChange]
// directly.
package keyfigures
