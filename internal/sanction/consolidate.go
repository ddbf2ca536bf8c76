package sanction

import "fmt"

// Consolidated is a group of sanction targets folded into one record
// for the decision index: the primary target's name plus a headcount
// suffix, and the exact sum of every individual fine.
type Consolidated struct {
	Label      string     `json:"label"`
	Targets    []Target   `json:"targets"`
	TotalFine  uint64     `json:"total_fine"`
	EntityType EntityType `json:"entity_type"`
}

// Consolidate folds targets into a single record. The first target is
// the primary one; with k targets the label reads "<primary> 외 N인"
// where N = k-1. A single target keeps its own name unchanged.
func Consolidate(targets []Target) Consolidated {
	if len(targets) == 0 {
		return Consolidated{}
	}
	var total uint64
	for _, t := range targets {
		total += t.FineAmount
	}
	primary := targets[0]
	label := primary.EntityName
	if len(targets) > 1 {
		label = fmt.Sprintf("%s 외 %d인", primary.EntityName, len(targets)-1)
	}
	return Consolidated{
		Label:      label,
		Targets:    targets,
		TotalFine:  total,
		EntityType: primary.EntityType,
	}
}
