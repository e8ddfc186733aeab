// Package metrics computes LCOM, CBO and WMC over extracted type records.
// All computations are pure: no function here mutates its input, so the
// per-type fan-out can run concurrently once the record set is frozen.
package metrics

import (
	"github.com/sourcegraph/conc/iter"

	"github.com/oxidelab/ferrolens/pkg/models"
)

// Analyze computes the metric triple for one type. CBO needs the full
// record set for cross-type name matching.
func Analyze(rec *models.TypeRecord, all []models.TypeRecord) models.Result {
	return models.Result{
		TypeName: rec.Name,
		File:     rec.File,
		LCOM:     LCOM(rec),
		CBO:      CBO(rec, all),
		WMC:      WMC(rec),
	}
}

// ComputeAll computes results for every record, in record order. The
// records must be fully merged before this is called: CBO depends on the
// complete global name set.
func ComputeAll(all []models.TypeRecord) []models.Result {
	return iter.Map(all, func(rec *models.TypeRecord) models.Result {
		return Analyze(rec, all)
	})
}
