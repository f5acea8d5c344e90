package services

// PrimaryStatus classifies the primary-relationship state between two
// characters after a proposed set of changes.
type PrimaryStatus int

const (
	// PrimaryOK means the constraint holds: fewer than two relationship
	// groups, or exactly one of them flagged primary.
	PrimaryOK PrimaryStatus = iota
	// PrimaryNeedsDisambiguation means two or more groups exist and none
	// is flagged; the caller must pick one before committing.
	PrimaryNeedsDisambiguation
	// PrimaryConflict means more than one group is flagged primary; the
	// change must be aborted.
	PrimaryConflict
)

// PairFlag is the primary flag of one relationship group (a pair or a
// single edge) between the same two characters, keyed by a
// representative edge id.
type PairFlag struct {
	ID        string
	IsPrimary bool
}

// PrimaryCheck is the result of validating the primary constraint.
// Candidates carries all group ids for NeedsDisambiguation and the
// conflicting flagged ids for Conflict.
type PrimaryCheck struct {
	Status     PrimaryStatus
	Candidates []string
}

// ValidatePrimaryConstraint checks at most one primary over the union of
// existing and pending relationship groups between two characters. Pure:
// it never touches storage, so callers can validate before opening a
// transaction.
func ValidatePrimaryConstraint(existing, pending []PairFlag) PrimaryCheck {
	all := make([]PairFlag, 0, len(existing)+len(pending))
	all = append(all, existing...)
	all = append(all, pending...)

	if len(all) < 2 {
		return PrimaryCheck{Status: PrimaryOK}
	}

	var primaries []string
	for _, f := range all {
		if f.IsPrimary {
			primaries = append(primaries, f.ID)
		}
	}

	switch len(primaries) {
	case 1:
		return PrimaryCheck{Status: PrimaryOK}
	case 0:
		candidates := make([]string, len(all))
		for i, f := range all {
			candidates[i] = f.ID
		}
		return PrimaryCheck{Status: PrimaryNeedsDisambiguation, Candidates: candidates}
	default:
		return PrimaryCheck{Status: PrimaryConflict, Candidates: primaries}
	}
}
