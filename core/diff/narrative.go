package diff

import (
	"fmt"

	"infra-estimator/core/types"
)

// Narrative explains each changed line item in one sentence, in the
// display currency. Unchanged items are skipped.
func (r *Result) Narrative(cur types.Currency) []string {
	var lines []string
	for _, d := range r.Items {
		if s := d.Narrative(cur); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// Narrative explains a single item change, or returns "" when the
// amount did not move
func (d ItemDiff) Narrative(cur types.Currency) string {
	var s string

	switch d.ChangeType {
	case ChangeAdded:
		s = fmt.Sprintf("New item %s costs %s/month", d.Label, cur.Format(d.After))
	case ChangeRemoved:
		s = fmt.Sprintf("Dropping %s saves %s/month", d.Label, cur.Format(d.Before))
	case ChangeModified:
		verb := "increased"
		if d.Delta.IsNegative() {
			verb = "decreased"
		}
		s = fmt.Sprintf("%s cost %s by %s (from %s to %s)",
			d.Label, verb, cur.Format(d.Delta.Abs()), cur.Format(d.Before), cur.Format(d.After))
	default:
		return ""
	}

	if d.DetailBefore != "" && d.DetailAfter != "" && d.DetailBefore != d.DetailAfter {
		s += fmt.Sprintf(": %s → %s", d.DetailBefore, d.DetailAfter)
	}
	return s
}
