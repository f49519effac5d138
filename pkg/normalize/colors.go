package normalize

import "math/rand/v2"

// ViewColor is the fixed neutral color for view tables.
const ViewColor = "#94a3b8"

// Palette holds the display colors assigned to non-view tables.
// Selection is pseudo-random via the run's injected random source, so a
// pinned seed yields a stable color assignment.
var Palette = []string{
	"#f03c3c",
	"#ff4f81",
	"#bc49c4",
	"#a751e8",
	"#7c4af0",
	"#6360f7",
	"#7d9dff",
	"#32c9b0",
	"#3cde7d",
	"#89e667",
	"#ffe159",
	"#ffb159",
}

func pickColor(rng *rand.Rand) string {
	return Palette[rng.IntN(len(Palette))]
}
