package widget

import (
	"fmt"
	"io"
)

// TextPresenter renders overlay states as plain text lines. It backs the
// watch command, which mirrors the page overlay onto a terminal.
type TextPresenter struct {
	w io.Writer
}

// NewTextPresenter creates a presenter writing to the given writer
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

// Render paints the given state
func (p *TextPresenter) Render(state State) {
	switch state.Kind {
	case KindLoading:
		fmt.Fprintln(p.w, "[eco] analyzing…")
	case KindSuccess:
		d := state.Display

		fmt.Fprintf(p.w, "[eco] %s: %d/100 (%s)\n", d.ProductName, d.OverallEcoScore, d.Tier)
		fmt.Fprintf(p.w, "      CO2 %.1f kg (%s), water %.1f L, recyclability %d/100, confidence %d%%\n",
			d.CO2TotalKg, d.CO2Equivalent, d.WaterUsageLiters, d.RecyclabilityScore, d.ConfidencePercent)

		for _, rec := range d.Recommendations {
			fmt.Fprintf(p.w, "      • %s\n", rec)
		}
	case KindError:
		fmt.Fprintf(p.w, "[eco] %s\n", state.Message)
	case KindAbsent:
		// nothing to paint
	}
}
