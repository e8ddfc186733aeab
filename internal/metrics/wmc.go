package metrics

import "github.com/oxidelab/ferrolens/pkg/models"

// WMC computes Weighted Methods per Class: the sum of cyclomatic
// complexity over all methods. The extractor guarantees complexity >= 1,
// so the floor here is an invariant guard rather than a behavioral clamp.
func WMC(rec *models.TypeRecord) int {
	total := 0
	for _, m := range rec.Methods {
		c := m.Complexity
		if c < 1 {
			c = 1
		}
		total += c
	}
	return total
}
