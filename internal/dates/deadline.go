package dates

// EvidenceWindowDays is the number of calendar days after the Board of Review
// closes during which evidence may still be submitted.
const EvidenceWindowDays = 10

// EvidenceDeadline returns close + 10 days in M/D/YYYY form, or "" when the
// close date is empty or not an M/D/YYYY date.
func EvidenceDeadline(closeShort string) string {
	if closeShort == "" {
		return ""
	}
	d, ok := ParseShort(closeShort)
	if !ok {
		return ""
	}
	return d.AddDays(EvidenceWindowDays).Short()
}
