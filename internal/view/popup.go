package view

import (
	"fmt"

	"rtref/internal/dataset"
	"rtref/internal/phrase"
	"rtref/internal/rtcall"
)

// CommandSlot selects which of a record's two command specs a popup shows.
type CommandSlot string

const (
	SlotInitial  CommandSlot = "initial"
	SlotFeedback CommandSlot = "feedback"
)

// ParseSlot parses a popup slot parameter.
func ParseSlot(s string) (CommandSlot, bool) {
	switch CommandSlot(s) {
	case SlotInitial:
		return SlotInitial, true
	case SlotFeedback:
		return SlotFeedback, true
	}
	return "", false
}

// BuildDescriptionPopup assembles the record description modal.
func (b *Builder) BuildDescriptionPopup(rec rtcall.CallRecord) *DescriptionPopup {
	return &DescriptionPopup{
		Title:       rec.Title,
		Route:       rec.Route,
		Description: rec.Description,
	}
}

// BuildCommandPopup assembles the command detail modal for one slot of a
// record. It returns nil when the slot carries no usable command, and
// automatic=true when the command plays on awake, in which case the caller
// serves the informational notice instead.
func (b *Builder) BuildCommandPopup(ds *dataset.Dataset, rec rtcall.CallRecord, slot CommandSlot) (popup *CommandPopup, automatic bool) {
	var spec *rtcall.CommandSpec
	switch slot {
	case SlotInitial:
		spec = rec.InitialCommand
	case SlotFeedback:
		spec = rec.FeedbackCommand
	}
	if !spec.HasCaption() {
		return nil, false
	}
	if spec.PlayOnAwake {
		return nil, true
	}

	lookup := phrase.NewLookup(ds.Parameters, b.logger)
	popup = &CommandPopup{
		Caption:            spec.Caption,
		Phrases:            spec.Phrases(),
		RequiredToInitiate: spec.RequiredToInitiate,
		RequiredToComplete: spec.RequiredToComplete,
	}

	for _, name := range spec.AllParameter {
		if p, ok := lookup.Resolve(name); ok {
			popup.Parameters = append(popup.Parameters, ParameterDetail{
				Name:        p.Name,
				Description: p.Description,
				Values:      p.Values,
			})
		} else {
			popup.Parameters = append(popup.Parameters, ParameterDetail{
				Name:    name,
				Missing: true,
			})
		}
	}

	return popup, false
}

// FindRecord locates a record within a phase by its session id, applying the
// same slug disambiguation the session builder does over the full phase
// list.
func FindRecord(ds *dataset.Dataset, phase rtcall.Phase, id string) (rtcall.CallRecord, bool) {
	usedIDs := make(map[string]bool)
	for i, rec := range ds.Calls[phase] {
		recID := rtcall.Slug(rec.Title)
		if recID == "" || usedIDs[recID] {
			recID = fmt.Sprintf("%s-%d", string(phase), i)
		}
		usedIDs[recID] = true
		if recID == id {
			return rec, true
		}
	}
	return rtcall.CallRecord{}, false
}
