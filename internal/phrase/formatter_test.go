package phrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtref/internal/rtcall"
	"rtref/pkg/logger"
)

func testParams() []rtcall.ParameterSpec {
	return []rtcall.ParameterSpec{
		{Name: "QNH", Description: "Altimeter pressure setting.", Values: []string{"745", "746"}},
		{Name: "taxi route", Description: "Sequence of taxiways.", Values: []string{"A, B"}},
		{Name: "runway", Description: "Runway designator in use.", Values: []string{"06L", "24R"}},
	}
}

func newTestLookup(t *testing.T) *Lookup {
	t.Helper()
	return NewLookup(testParams(), logger.Nop())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "taxiroute", Normalize("Taxi Route"))
	assert.Equal(t, "taxiroute", Normalize("TAXI-ROUTE"))
	assert.Equal(t, "qnh746", Normalize("QNH 746"))
	assert.Equal(t, "", Normalize("  ...  "))
}

func TestResolveCasingAndPunctuationVariants(t *testing.T) {
	lookup := newTestLookup(t)

	for _, variant := range []string{"taxi route", "TaxiRoute", "TAXI_ROUTE", "taxi.route", "Taxi  Route"} {
		p, ok := lookup.Resolve(variant)
		require.True(t, ok, "variant %q should resolve", variant)
		assert.Equal(t, "taxi route", p.Name)
		assert.Equal(t, "Sequence of taxiways.", p.Description)
	}
}

func TestResolveByAllowedValue(t *testing.T) {
	lookup := newTestLookup(t)

	// "06L" is not a parameter name but an allowed value of "runway".
	p, ok := lookup.Resolve("06L")
	require.True(t, ok)
	assert.Equal(t, "runway", p.Name)
}

func TestResolveNamePrefixWithLiteralValue(t *testing.T) {
	lookup := newTestLookup(t)

	// The literal value after the name must not matter.
	for _, token := range []string{"QNH 746", "QNH 999", "qnh 0"} {
		p, ok := lookup.Resolve(token)
		require.True(t, ok, "token %q should resolve", token)
		assert.Equal(t, "QNH", p.Name)
	}
}

func TestResolveUnknown(t *testing.T) {
	lookup := newTestLookup(t)

	_, ok := lookup.Resolve("nonexistent")
	assert.False(t, ok)
}

func TestFirstMatchWinsOnNormalizationCollision(t *testing.T) {
	params := []rtcall.ParameterSpec{
		{Name: "taxi-route", Description: "first"},
		{Name: "Taxi Route", Description: "second"},
	}
	lookup := NewLookup(params, logger.Nop())

	p, ok := lookup.Resolve("taxiroute")
	require.True(t, ok)
	assert.Equal(t, "first", p.Description)
}

func TestNameTakesPrecedenceOverValue(t *testing.T) {
	params := []rtcall.ParameterSpec{
		{Name: "wind", Description: "surface wind", Values: []string{"runway"}},
		{Name: "runway", Description: "runway in use"},
	}
	lookup := NewLookup(params, logger.Nop())

	// "runway" is both a value of "wind" and a name; the name wins.
	p, ok := lookup.Resolve("runway")
	require.True(t, ok)
	assert.Equal(t, "runway in use", p.Description)
}

func TestAnnotateResolvedPlaceholder(t *testing.T) {
	lookup := newTestLookup(t)

	segments := lookup.Annotate("start approved, QNH {QNH 746}.")
	require.Len(t, segments, 3)

	assert.Equal(t, SegmentText, segments[0].Kind)
	assert.Equal(t, "start approved, QNH ", segments[0].Text)

	assert.Equal(t, SegmentResolved, segments[1].Kind)
	assert.Equal(t, "{QNH 746}", segments[1].Text)
	assert.Equal(t, "QNH: Altimeter pressure setting.", segments[1].Tooltip)

	assert.Equal(t, SegmentText, segments[2].Kind)
	assert.Equal(t, ".", segments[2].Text)
}

func TestAnnotateUnresolvedPlaceholder(t *testing.T) {
	lookup := newTestLookup(t)

	segments := lookup.Annotate("{nonexistent}")
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentUnresolved, segments[0].Kind)
	assert.Equal(t, "{nonexistent}", segments[0].Text)
	assert.Equal(t, "nonexistent", segments[0].Key)
}

func TestAnnotateEmptyBracesPassThrough(t *testing.T) {
	lookup := newTestLookup(t)

	segments := lookup.Annotate("before {} after {  } end")
	for _, seg := range segments {
		assert.Equal(t, SegmentText, seg.Kind)
	}
}

func TestAnnotateUnclosedBrace(t *testing.T) {
	lookup := newTestLookup(t)

	segments := lookup.Annotate("taxi via {taxi route} then {unclosed")
	require.Len(t, segments, 3)
	assert.Equal(t, SegmentResolved, segments[1].Kind)
	assert.Equal(t, SegmentText, segments[2].Kind)
	assert.Equal(t, " then {unclosed", segments[2].Text)
}

func TestAnnotatePlainText(t *testing.T) {
	lookup := newTestLookup(t)

	segments := lookup.Annotate("no placeholders here")
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentText, segments[0].Kind)
	assert.Equal(t, "no placeholders here", segments[0].Text)
}

func TestAnnotateMultiplePlaceholders(t *testing.T) {
	lookup := newTestLookup(t)

	segments := lookup.Annotate("{runway} via {taxi route}")
	require.Len(t, segments, 3)
	assert.Equal(t, SegmentResolved, segments[0].Kind)
	assert.Equal(t, "runway", segments[0].Param.Name)
	assert.Equal(t, SegmentText, segments[1].Kind)
	assert.Equal(t, SegmentResolved, segments[2].Kind)
	assert.Equal(t, "taxi route", segments[2].Param.Name)
}

func TestAnnotateEmptyInput(t *testing.T) {
	lookup := newTestLookup(t)
	assert.Empty(t, lookup.Annotate(""))
}
