// Package view builds the render model for the reference pages: sessions,
// navigation and popups. Every request rebuilds the whole model from the
// loaded dataset, the query parameters carry the complete UI state.
package view

import "rtref/internal/rtcall"

// RowKind identifies one of the three fixed rows of a session.
type RowKind string

const (
	RowInitial  RowKind = "initial"
	RowATC      RowKind = "atc"
	RowFeedback RowKind = "feedback"
)

// ControlState is the visual state of a row's command control.
type ControlState string

const (
	// ControlDisabled renders greyed out and swallows clicks: the record
	// has no command spec, or the spec has no caption.
	ControlDisabled ControlState = "disabled"
	// ControlAutomatic marks a command that fires without user input;
	// clicking shows the informational notice instead of the detail popup.
	ControlAutomatic ControlState = "automatic"
	// ControlDetail opens the command detail popup.
	ControlDetail ControlState = "detail"
)

// Fragment is one annotated piece of a call line, ready for the template.
// Kind is "text", "param" or "missing".
type Fragment struct {
	Kind    string
	Text    string
	Tooltip string
}

// Control is the action button on a pilot-originated row.
type Control struct {
	State   ControlState
	Caption string
	Slot    string // "initial" or "feedback", for the popup endpoint
}

// Row is one line of a session table.
type Row struct {
	Kind      RowKind
	Label     string
	Fragments []Fragment
	Missing   bool   // call text absent, rendered as "not available"
	Control   *Control
	ATCType   string // static icon hint on ATC rows
}

// Session is the display unit for one call record: a title, three rows in
// fixed initial/ATC/feedback order, and an anchor id for jump links.
type Session struct {
	ID          string
	Index       int
	Title       string
	Category    string
	Route       string
	Highlighted bool
	Rows        []Row
}

// PhaseLink is a top-tier navigation entry.
type PhaseLink struct {
	Key     rtcall.Phase
	Caption string
	Active  bool
}

// CategoryLink is a bottom-tier navigation entry.
type CategoryLink struct {
	Name   string
	Active bool
}

// JumpLink scrolls to one rendered session.
type JumpLink struct {
	ID    string
	Title string
}

// Nav is the two-tier navigation model plus per-record jump links.
type Nav struct {
	Airports   []string
	Airport    string
	Phases     []PhaseLink
	Categories []CategoryLink
	Jumps      []JumpLink
}

// State is the complete UI state of a page request.
type State struct {
	Airport   string
	Phase     rtcall.Phase
	Category  string
	Highlight string
}

// Timings are the client-side delays the server hands to the browser shim.
type Timings struct {
	TooltipDelayMS      int
	HighlightDurationMS int
}

// Page is the full render model for the main reference page.
type Page struct {
	State    State
	Nav      Nav
	Sessions []Session
	Timings  Timings
}

// DescriptionPopup is the record description modal.
type DescriptionPopup struct {
	Title       string
	Route       string
	Description string
}

// ParameterDetail is one entry of the command popup's parameter breakdown.
type ParameterDetail struct {
	Name        string
	Description string
	Values      []string
	Missing     bool // referenced but absent from the dictionary
}

// CommandPopup is the command detail modal.
type CommandPopup struct {
	Caption            string
	Phrases            []string
	Parameters         []ParameterDetail
	RequiredToInitiate bool
	RequiredToComplete bool
}

// AircraftPage is the render model for the aircraft catalog view.
type AircraftPage struct {
	Airport  string
	Aircraft []rtcall.Aircraft
}

// ErrorPage is the render model for the static error view that replaces the
// content area when a dataset cannot be loaded.
type ErrorPage struct {
	Status  int
	Message string
}
