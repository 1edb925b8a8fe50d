package search

// Result is one normalized book record, ready for display.
type Result struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	AuthorLine string   `json:"author_line"` // joined authors, or the unknown-author placeholder
	Thumbnail  string   `json:"thumbnail,omitempty"`
}

// HasCover reports whether the result carries a cover image link.
func (r Result) HasCover() bool { return r.Thumbnail != "" }

// State tags the active variant of an Outcome.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the mutually exclusive state that drives the view.
// Results is set only for StateSuccess, Message only for StateError.
type Outcome struct {
	State   State
	Results []Result
	Message string
}

func Idle() Outcome    { return Outcome{State: StateIdle} }
func Loading() Outcome { return Outcome{State: StateLoading} }
func Empty() Outcome   { return Outcome{State: StateEmpty} }

// Success holds results in upstream order.
func Success(results []Result) Outcome {
	return Outcome{State: StateSuccess, Results: results}
}

// Failure carries the user-facing message only; the cause is logged elsewhere.
func Failure(message string) Outcome {
	return Outcome{State: StateError, Message: message}
}
