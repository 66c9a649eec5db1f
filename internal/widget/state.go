// Package widget models the analysis overlay lifecycle and its
// presentation-only projection of a scoring result.
package widget

// Kind identifies the lifecycle phase of the analysis overlay
type Kind string

const (
	// KindAbsent means no overlay is present on the page
	KindAbsent Kind = "absent"
	// KindLoading means an analysis is in flight for the current page
	KindLoading Kind = "loading"
	// KindSuccess means the overlay shows a completed analysis
	KindSuccess Kind = "success"
	// KindError means the overlay shows the generic failure message
	KindError Kind = "error"
)

// ErrorMessage is the one user-facing failure string. Underlying errors go
// to the diagnostic log, never the overlay.
const ErrorMessage = "Environmental data is temporarily unavailable"

// State is a single overlay state. A page holds at most one State at a
// time; a new navigation discards the previous one entirely.
type State struct {
	// Kind is the lifecycle phase
	Kind Kind
	// Display carries the rendered model when Kind is KindSuccess
	Display DisplayModel
	// Message carries the user-facing text when Kind is KindError
	Message string
}

// Absent returns the no-overlay state
func Absent() State {
	return State{Kind: KindAbsent}
}

// Loading returns the in-flight overlay state
func Loading() State {
	return State{Kind: KindLoading}
}

// Success returns an overlay state carrying the given display model
func Success(display DisplayModel) State {
	return State{Kind: KindSuccess, Display: display}
}

// Error returns the generic failure overlay state
func Error() State {
	return State{Kind: KindError, Message: ErrorMessage}
}

// Present reports whether the state renders anything on the page
func (s State) Present() bool {
	return s.Kind != KindAbsent && s.Kind != ""
}

// Presenter renders overlay states. Implementations are pure view code;
// the orchestrator drives them through Render only.
type Presenter interface {
	// Render paints the given state, replacing whatever was shown before
	Render(state State)
}
