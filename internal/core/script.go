package core

import "strings"

// batchSeparator is the T-SQL batch separator recognized on a line of its
// own, case-insensitively, with surrounding whitespace ignored.
const batchSeparator = "GO"

// SplitBatches splits a licensing script into its GO-separated batches,
// dropping batches that are empty after trimming. Batch order is preserved.
func SplitBatches(script string) []string {
	var batches []string
	var current []string

	flush := func() {
		batch := strings.TrimSpace(strings.Join(current, "\n"))
		if batch != "" {
			batches = append(batches, batch)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(script, "\n") {
		if strings.EqualFold(strings.TrimSpace(line), batchSeparator) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return batches
}
