package rtcall

import "sort"

// CategoryAll is the pseudo-entry that disables sub-category filtering.
const CategoryAll = "ALL"

// CallSet groups the loaded call records by flight phase. Array order within
// a phase is the display order.
type CallSet map[Phase][]CallRecord

// Phases returns the phases present in the set, in fixed navigation order.
func (cs CallSet) Phases() []Phase {
	var phases []Phase
	for _, p := range PhaseOrder {
		if len(cs[p]) > 0 {
			phases = append(phases, p)
		}
	}
	return phases
}

// Categories returns the distinct category values present within a phase,
// sorted, without the ALL pseudo-entry.
func (cs CallSet) Categories(phase Phase) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, rec := range cs[phase] {
		if rec.Category == "" || seen[rec.Category] {
			continue
		}
		seen[rec.Category] = true
		categories = append(categories, rec.Category)
	}
	sort.Strings(categories)
	return categories
}

// Filter returns the phase's records matching the category by exact string
// match. CategoryAll (or the empty string) returns the full set for the
// phase. A category not present in the phase also falls back to the full
// set, so a stale filter from a previous phase never leaks through.
func (cs CallSet) Filter(phase Phase, category string) []CallRecord {
	records := cs[phase]
	if category == "" || category == CategoryAll {
		return records
	}

	present := false
	for _, c := range cs.Categories(phase) {
		if c == category {
			present = true
			break
		}
	}
	if !present {
		return records
	}

	var filtered []CallRecord
	for _, rec := range records {
		if rec.Category == category {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// Count returns the total number of records across all phases.
func (cs CallSet) Count() int {
	n := 0
	for _, records := range cs {
		n += len(records)
	}
	return n
}
