package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampBar(pct float64, width int) (float64, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	return pct, width
}

// RenderProgress renders a progress bar like [████░░░░]  45%.
// The bar is colored by score: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", render(style, bar), pct*100)
}

// RenderBalance renders the sitting share in the sitting color and the rest
// in the standing color.
func RenderBalance(sittingPct float64, width int) string {
	sittingPct, width = clampBar(sittingPct, width)

	sitting := int(sittingPct*float64(width) + 0.5)
	return fmt.Sprintf("[%s%s]",
		render(StyleBlue, strings.Repeat(filledBlock, sitting)),
		render(StyleGreen, strings.Repeat(filledBlock, width-sitting)),
	)
}
