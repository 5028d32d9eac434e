// Package phrase annotates scripted call text. Call lines carry {placeholder}
// tokens for the variable parts of an exchange (taxi route, QNH, squawk);
// each token is resolved against the parameter dictionary and wrapped with
// the matching description for tooltip display.
package phrase

import (
	"fmt"
	"strings"
	"unicode"

	"rtref/internal/rtcall"
	"rtref/pkg/logger"
)

// SegmentKind distinguishes the pieces Annotate splits call text into.
type SegmentKind int

const (
	// SegmentText is plain text outside any placeholder.
	SegmentText SegmentKind = iota
	// SegmentResolved is a placeholder matched to a dictionary entry.
	SegmentResolved
	// SegmentUnresolved is a placeholder with no dictionary entry.
	SegmentUnresolved
)

// Segment is one annotated piece of a call line. Text always holds the
// original input text, braces included for placeholder segments, so the
// rendered line reads exactly like the source.
type Segment struct {
	Kind    SegmentKind
	Text    string
	Param   *rtcall.ParameterSpec // set for SegmentResolved
	Tooltip string                // "name: description" for SegmentResolved
	Key     string                // inner token text for placeholder segments
}

// Lookup resolves placeholder tokens against the parameter dictionary using
// normalized keys, so {Taxi Route}, {taxiroute} and {TAXI-ROUTE} all hit the
// same entry.
type Lookup struct {
	// byKey maps normalized parameter names and normalized allowed values
	// to their entries. Name keys are indexed before value keys and the
	// first entry to claim a key keeps it.
	byKey map[string]*rtcall.ParameterSpec
	// ordered keeps the dictionary input order for prefix fallback.
	ordered []*rtcall.ParameterSpec
	logger  *logger.Logger
}

// NewLookup builds a lookup over the given dictionary. Input order matters:
// when two entries normalize to the same key, the earlier one wins.
func NewLookup(params []rtcall.ParameterSpec, log *logger.Logger) *Lookup {
	l := &Lookup{
		byKey:  make(map[string]*rtcall.ParameterSpec, len(params)*2),
		logger: log.Named("phrase-lookup"),
	}

	for i := range params {
		p := &params[i]
		l.ordered = append(l.ordered, p)
		key := Normalize(p.Name)
		if key == "" {
			continue
		}
		if prev, ok := l.byKey[key]; ok {
			l.logger.Warn("Parameter name collides under normalization",
				logger.String("name", p.Name),
				logger.String("kept", prev.Name))
			continue
		}
		l.byKey[key] = p
	}

	// Allowed values index after all names, so a value can never shadow a
	// parameter name.
	for _, p := range l.ordered {
		for _, v := range p.Values {
			key := Normalize(v)
			if key == "" {
				continue
			}
			if _, ok := l.byKey[key]; ok {
				continue
			}
			l.byKey[key] = p
		}
	}

	return l
}

// Normalize strips every non-alphanumeric rune and lowercases the rest.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve maps a raw placeholder token to its dictionary entry. It tries an
// exact normalized match first (names, then allowed values, by index
// construction), then falls back to a name-prefix match so tokens like
// "QNH 746" still resolve to the QNH entry regardless of the literal value.
func (l *Lookup) Resolve(token string) (*rtcall.ParameterSpec, bool) {
	key := Normalize(token)
	if key == "" {
		return nil, false
	}

	if p, ok := l.byKey[key]; ok {
		return p, true
	}

	for _, p := range l.ordered {
		name := Normalize(p.Name)
		if name != "" && strings.HasPrefix(key, name) {
			return p, true
		}
	}

	return nil, false
}

// Len returns the number of dictionary entries behind the lookup.
func (l *Lookup) Len() int {
	return len(l.ordered)
}

// Annotate scans text left-to-right for {...} spans (non-greedy, nested
// braces unsupported) and splits it into segments. Unresolved placeholders
// become distinct "no data" segments rather than failing the render.
// Empty or whitespace-only braces pass through as plain text.
func (l *Lookup) Annotate(text string) []Segment {
	var segments []Segment
	rest := text

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			// Unclosed brace, the remainder is plain text.
			break
		}
		end += open + 1

		if open > 0 {
			segments = append(segments, Segment{Kind: SegmentText, Text: rest[:open]})
		}

		raw := rest[open : end+1]
		inner := rest[open+1 : end]
		if strings.TrimSpace(inner) == "" {
			segments = append(segments, Segment{Kind: SegmentText, Text: raw})
		} else if p, ok := l.Resolve(inner); ok {
			segments = append(segments, Segment{
				Kind:    SegmentResolved,
				Text:    raw,
				Param:   p,
				Tooltip: fmt.Sprintf("%s: %s", p.Name, p.Description),
				Key:     inner,
			})
		} else {
			l.logger.Debug("Unresolved placeholder", logger.String("token", inner))
			segments = append(segments, Segment{
				Kind: SegmentUnresolved,
				Text: raw,
				Key:  inner,
			})
		}

		rest = rest[end+1:]
	}

	if rest != "" {
		segments = append(segments, Segment{Kind: SegmentText, Text: rest})
	}

	return segments
}
