package view

import (
	"fmt"

	"rtref/internal/dataset"
	"rtref/internal/phrase"
	"rtref/internal/rtcall"
	"rtref/pkg/logger"
)

// Builder turns a loaded dataset plus a request state into render models.
type Builder struct {
	timings Timings
	logger  *logger.Logger
}

// NewBuilder creates a view builder.
func NewBuilder(timings Timings, log *logger.Logger) *Builder {
	return &Builder{
		timings: timings,
		logger:  log.Named("view-builder"),
	}
}

// NormalizeState clamps a raw request state against the dataset: an unknown
// phase falls back to the first phase present, and a category that does not
// exist within the selected phase falls back to ALL. The fallback is what
// guarantees a filter never leaks across a phase switch.
func (b *Builder) NormalizeState(ds *dataset.Dataset, state State) State {
	if !state.Phase.Valid() || len(ds.Calls[state.Phase]) == 0 {
		phases := ds.Calls.Phases()
		if len(phases) > 0 {
			state.Phase = phases[0]
		}
	}

	if state.Category != "" && state.Category != rtcall.CategoryAll {
		present := false
		for _, c := range ds.Calls.Categories(state.Phase) {
			if c == state.Category {
				present = true
				break
			}
		}
		if !present {
			state.Category = rtcall.CategoryAll
		}
	}
	if state.Category == "" {
		state.Category = rtcall.CategoryAll
	}

	return state
}

// BuildPage assembles the full render model for the main page.
func (b *Builder) BuildPage(ds *dataset.Dataset, airports []string, state State) *Page {
	state = b.NormalizeState(ds, state)
	lookup := phrase.NewLookup(ds.Parameters, b.logger)
	sessions := b.buildSessions(ds, lookup, state)

	return &Page{
		State:    state,
		Nav:      b.buildNav(ds, airports, state, sessions),
		Sessions: sessions,
		Timings:  b.timings,
	}
}

// buildSessions renders one session per filtered record, in array order.
// Session ids are assigned over the full phase list before filtering, so an
// id stays stable no matter which category filter is active. Slugs are
// disambiguated with an index suffix so two records with the same title
// still get distinct anchors.
func (b *Builder) buildSessions(ds *dataset.Dataset, lookup *phrase.Lookup, state State) []Session {
	records := ds.Calls[state.Phase]
	filterAll := state.Category == "" || state.Category == rtcall.CategoryAll
	sessions := make([]Session, 0, len(records))
	usedIDs := make(map[string]bool, len(records))

	for i, rec := range records {
		id := rtcall.Slug(rec.Title)
		if id == "" || usedIDs[id] {
			id = fmt.Sprintf("%s-%d", string(state.Phase), i)
		}
		usedIDs[id] = true

		if !filterAll && rec.Category != state.Category {
			continue
		}

		sessions = append(sessions, Session{
			ID:          id,
			Index:       i,
			Title:       rec.Title,
			Category:    rec.Category,
			Route:       rec.Route,
			Highlighted: state.Highlight != "" && state.Highlight == id,
			Rows: []Row{
				b.buildPilotRow(RowInitial, rec.InitialCall, rec.InitialCommand, "initial", lookup),
				b.buildATCRow(rec, lookup),
				b.buildPilotRow(RowFeedback, rec.FeedbackCall, rec.FeedbackCommand, "feedback", lookup),
			},
		})
	}

	return sessions
}

// buildPilotRow renders an initial or feedback row with its command control.
func (b *Builder) buildPilotRow(kind RowKind, text string, spec *rtcall.CommandSpec, slot string, lookup *phrase.Lookup) Row {
	row := Row{
		Kind:    kind,
		Label:   "Pilot",
		Control: buildControl(spec, slot),
	}
	if text == "" {
		row.Missing = true
		return row
	}
	row.Fragments = toFragments(lookup.Annotate(text))
	return row
}

// buildATCRow renders the controller row: always a static icon, never a
// button.
func (b *Builder) buildATCRow(rec rtcall.CallRecord, lookup *phrase.Lookup) Row {
	row := Row{
		Kind:    RowATC,
		Label:   "ATC",
		ATCType: rec.ATCType,
	}
	if rec.ATCCall == "" {
		row.Missing = true
		return row
	}
	row.Fragments = toFragments(lookup.Annotate(rec.ATCCall))
	return row
}

// buildControl derives the control state from the command spec.
func buildControl(spec *rtcall.CommandSpec, slot string) *Control {
	ctl := &Control{Slot: slot}
	switch {
	case !spec.HasCaption():
		ctl.State = ControlDisabled
	case spec.PlayOnAwake:
		ctl.State = ControlAutomatic
		ctl.Caption = spec.Caption
	default:
		ctl.State = ControlDetail
		ctl.Caption = spec.Caption
	}
	return ctl
}

// toFragments converts annotated segments into template fragments.
func toFragments(segments []phrase.Segment) []Fragment {
	fragments := make([]Fragment, 0, len(segments))
	for _, seg := range segments {
		switch seg.Kind {
		case phrase.SegmentResolved:
			fragments = append(fragments, Fragment{Kind: "param", Text: seg.Text, Tooltip: seg.Tooltip})
		case phrase.SegmentUnresolved:
			fragments = append(fragments, Fragment{
				Kind:    "missing",
				Text:    seg.Text,
				Tooltip: fmt.Sprintf("no data: %s", seg.Key),
			})
		default:
			fragments = append(fragments, Fragment{Kind: "text", Text: seg.Text})
		}
	}
	return fragments
}

// buildNav assembles the two-tier navigation plus the jump-link list.
func (b *Builder) buildNav(ds *dataset.Dataset, airports []string, state State, sessions []Session) Nav {
	nav := Nav{
		Airports: airports,
		Airport:  state.Airport,
	}

	for _, p := range ds.Calls.Phases() {
		nav.Phases = append(nav.Phases, PhaseLink{
			Key:     p,
			Caption: p.Caption(),
			Active:  p == state.Phase,
		})
	}

	nav.Categories = append(nav.Categories, CategoryLink{
		Name:   rtcall.CategoryAll,
		Active: state.Category == rtcall.CategoryAll,
	})
	for _, c := range ds.Calls.Categories(state.Phase) {
		nav.Categories = append(nav.Categories, CategoryLink{
			Name:   c,
			Active: c == state.Category,
		})
	}

	for _, s := range sessions {
		nav.Jumps = append(nav.Jumps, JumpLink{ID: s.ID, Title: s.Title})
	}

	return nav
}
