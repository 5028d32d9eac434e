package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtref/internal/dataset"
	"rtref/internal/rtcall"
)

func TestBuildDescriptionPopup(t *testing.T) {
	rec := rtcall.CallRecord{
		Title:       "Engine start",
		Route:       "Apron - Ground",
		Description: "Request to start engines.",
	}
	popup := newTestBuilder().BuildDescriptionPopup(rec)
	assert.Equal(t, "Engine start", popup.Title)
	assert.Equal(t, "Apron - Ground", popup.Route)
	assert.Equal(t, "Request to start engines.", popup.Description)
}

func TestBuildCommandPopup(t *testing.T) {
	ds := testDataset()
	rec := rtcall.CallRecord{
		InitialCommand: &rtcall.CommandSpec{
			Caption:            "Request start",
			MainCommand:        "request engine start",
			AltCommand:         []string{"request start up"},
			AllParameter:       []string{"callsign", "nonexistent"},
			RequiredToInitiate: true,
		},
	}

	popup, automatic := newTestBuilder().BuildCommandPopup(ds, rec, SlotInitial)
	require.False(t, automatic)
	require.NotNil(t, popup)

	assert.Equal(t, "Request start", popup.Caption)
	assert.Equal(t, []string{"request engine start", "request start up"}, popup.Phrases)
	assert.True(t, popup.RequiredToInitiate)
	assert.False(t, popup.RequiredToComplete)

	require.Len(t, popup.Parameters, 2)
	assert.Equal(t, "callsign", popup.Parameters[0].Name)
	assert.False(t, popup.Parameters[0].Missing)
	assert.Equal(t, "nonexistent", popup.Parameters[1].Name)
	assert.True(t, popup.Parameters[1].Missing)
}

func TestBuildCommandPopupAutomatic(t *testing.T) {
	rec := rtcall.CallRecord{
		InitialCommand: &rtcall.CommandSpec{Caption: "Ready call", PlayOnAwake: true},
	}
	popup, automatic := newTestBuilder().BuildCommandPopup(testDataset(), rec, SlotInitial)
	assert.True(t, automatic)
	assert.Nil(t, popup)
}

func TestBuildCommandPopupAbsentSpec(t *testing.T) {
	rec := rtcall.CallRecord{FeedbackCommand: nil}
	popup, automatic := newTestBuilder().BuildCommandPopup(testDataset(), rec, SlotFeedback)
	assert.False(t, automatic)
	assert.Nil(t, popup)
}

func TestParseSlot(t *testing.T) {
	slot, ok := ParseSlot("initial")
	require.True(t, ok)
	assert.Equal(t, SlotInitial, slot)

	slot, ok = ParseSlot("feedback")
	require.True(t, ok)
	assert.Equal(t, SlotFeedback, slot)

	_, ok = ParseSlot("atc")
	assert.False(t, ok)
}

func TestFindRecord(t *testing.T) {
	ds := testDataset()

	rec, ok := FindRecord(ds, rtcall.PhaseDeparture, "engine-start")
	require.True(t, ok)
	assert.Equal(t, "Engine start", rec.Title)

	_, ok = FindRecord(ds, rtcall.PhaseDeparture, "no-such-call")
	assert.False(t, ok)
}

func TestFindRecordDuplicateTitles(t *testing.T) {
	ds := &dataset.Dataset{
		Calls: rtcall.CallSet{
			rtcall.PhaseSpecial: {
				{Title: "Go around", Description: "first"},
				{Title: "Go around", Description: "second"},
			},
		},
	}

	first, ok := FindRecord(ds, rtcall.PhaseSpecial, "go-around")
	require.True(t, ok)
	assert.Equal(t, "first", first.Description)

	second, ok := FindRecord(ds, rtcall.PhaseSpecial, "special-1")
	require.True(t, ok)
	assert.Equal(t, "second", second.Description)
}
