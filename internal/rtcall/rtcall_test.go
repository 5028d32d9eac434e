package rtcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "engine-start", Slug("Engine start"))
	assert.Equal(t, "taxi-to-holding-point", Slug("Taxi to holding point!"))
	assert.Equal(t, "go-around", Slug("  Go / Around  "))
	assert.Equal(t, "", Slug("!!!"))
	assert.Equal(t, "", Slug(""))
}

func TestParsePhase(t *testing.T) {
	p, ok := ParsePhase("Arrival")
	require.True(t, ok)
	assert.Equal(t, PhaseArrival, p)

	p, ok = ParsePhase(" departure ")
	require.True(t, ok)
	assert.Equal(t, PhaseDeparture, p)

	_, ok = ParsePhase("cruise")
	assert.False(t, ok)
}

func TestCommandSpecHasCaption(t *testing.T) {
	var nilSpec *CommandSpec
	assert.False(t, nilSpec.HasCaption())
	assert.False(t, (&CommandSpec{Caption: "   "}).HasCaption())
	assert.True(t, (&CommandSpec{Caption: "Request taxi"}).HasCaption())
}

func TestCommandSpecPhrases(t *testing.T) {
	spec := &CommandSpec{
		MainCommand: "request taxi",
		AltCommand:  []string{"taxi request", "", "may we taxi"},
	}
	assert.Equal(t, []string{"request taxi", "taxi request", "may we taxi"}, spec.Phrases())

	var nilSpec *CommandSpec
	assert.Nil(t, nilSpec.Phrases())
}

func testSet() CallSet {
	return CallSet{
		PhaseDeparture: {
			{Title: "Radio check", Category: "Ground"},
			{Title: "Engine start", Category: "Ground"},
			{Title: "Taxi", Category: "Taxi"},
		},
		PhaseArrival: {
			{Title: "Landing clearance", Category: "Tower"},
		},
	}
}

func TestCallSetPhasesFixedOrder(t *testing.T) {
	phases := testSet().Phases()
	assert.Equal(t, []Phase{PhaseArrival, PhaseDeparture}, phases)
}

func TestCallSetCategories(t *testing.T) {
	assert.Equal(t, []string{"Ground", "Taxi"}, testSet().Categories(PhaseDeparture))
	assert.Empty(t, testSet().Categories(PhaseCircuit))
}

func TestCallSetFilter(t *testing.T) {
	cs := testSet()

	assert.Len(t, cs.Filter(PhaseDeparture, CategoryAll), 3)
	assert.Len(t, cs.Filter(PhaseDeparture, ""), 3)
	assert.Len(t, cs.Filter(PhaseDeparture, "Ground"), 2)
	assert.Len(t, cs.Filter(PhaseDeparture, "Taxi"), 1)

	// A category from another phase must not leak a filter in, the full
	// set comes back.
	assert.Len(t, cs.Filter(PhaseDeparture, "Tower"), 3)
}

func TestCallSetCount(t *testing.T) {
	assert.Equal(t, 4, testSet().Count())
}
