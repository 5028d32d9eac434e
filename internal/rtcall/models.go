package rtcall

import (
	"strings"
	"unicode"
)

// Phase is a top-level flight-phase category of call records.
type Phase string

const (
	PhaseArrival   Phase = "arrival"
	PhaseDeparture Phase = "departure"
	PhaseCircuit   Phase = "circuit"
	PhaseSpecial   Phase = "special"
	PhaseNew       Phase = "new"
)

// PhaseOrder is the fixed display order of the top-tier navigation. PhaseNew
// only appears when the dataset actually carries records for it.
var PhaseOrder = []Phase{PhaseArrival, PhaseDeparture, PhaseCircuit, PhaseSpecial, PhaseNew}

// phaseCaptions maps phase keys to display captions.
var phaseCaptions = map[Phase]string{
	PhaseArrival:   "Arrival",
	PhaseDeparture: "Departure",
	PhaseCircuit:   "Circuit",
	PhaseSpecial:   "Special",
	PhaseNew:       "New",
}

// Caption returns the display caption for the phase.
func (p Phase) Caption() string {
	if c, ok := phaseCaptions[p]; ok {
		return c
	}
	return string(p)
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	_, ok := phaseCaptions[p]
	return ok
}

// ParsePhase parses a phase key, case-insensitively.
func ParsePhase(s string) (Phase, bool) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// CallRecord is one scripted pilot/controller exchange. Records are immutable
// once loaded.
type CallRecord struct {
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	Description     string       `json:"description"`
	Route           string       `json:"route"`
	InitialCall     string       `json:"initialCall"`
	ATCCall         string       `json:"atcCall"`
	FeedbackCall    string       `json:"feedbackCall"`
	InitialCommand  *CommandSpec `json:"initialCommand"`
	FeedbackCommand *CommandSpec `json:"feedbackCommand"`
	ATCType         string       `json:"atcType"`
	ICAO            string       `json:"icao"`
}

// CommandSpec describes how a line of dialogue maps to a voice command in the
// companion training simulator. Each spec is owned by exactly one call record
// field, initial or feedback.
type CommandSpec struct {
	Caption            string   `json:"caption"`
	PlayOnAwake        bool     `json:"playOnAwake"`
	RequiredToInitiate bool     `json:"requiredToInitiate"`
	RequiredToComplete bool     `json:"requiredToComplete"`
	MainCommand        string   `json:"mainCommand"`
	AltCommand         []string `json:"altCommand"`
	AllParameter       []string `json:"allParameter"`
}

// HasCaption reports whether the spec carries a usable caption. A spec
// without one renders as a disabled control.
func (c *CommandSpec) HasCaption() bool {
	return c != nil && strings.TrimSpace(c.Caption) != ""
}

// Phrases returns the main command followed by the alternates, skipping
// empties, for concatenated display in the command detail popup.
func (c *CommandSpec) Phrases() []string {
	if c == nil {
		return nil
	}
	phrases := make([]string, 0, 1+len(c.AltCommand))
	if strings.TrimSpace(c.MainCommand) != "" {
		phrases = append(phrases, c.MainCommand)
	}
	for _, alt := range c.AltCommand {
		if strings.TrimSpace(alt) != "" {
			phrases = append(phrases, alt)
		}
	}
	return phrases
}

// ParameterSpec is a shared tooltip dictionary entry, looked up by normalized
// name from CommandSpec.AllParameter and from {placeholder} tokens.
type ParameterSpec struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Values      []string `json:"values"`
}

// Aircraft is one entry of the per-airport aircraft catalog view.
type Aircraft struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Callsign    string `json:"callsign"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Slug derives a URL/anchor-safe identifier from a record title. Runs of
// non-alphanumeric characters collapse to single hyphens. Titles made
// entirely of punctuation produce an empty slug; callers must disambiguate.
func Slug(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
