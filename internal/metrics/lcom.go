package metrics

import "github.com/oxidelab/ferrolens/pkg/models"

// LCOM computes Lack of Cohesion in Methods for one type using the
// Henderson-Sellers variant:
//
//	lcom = (m - sum(mA)/a) / (m - 1)
//
// where m is the method count, a the field count, and mA the number of
// methods accessing each field. Higher means less cohesive.
//
// Types with at most one method or no fields carry no evidence of
// incohesion and score 0.0. The result is clamped to [0,1]; the raw
// formula can drift slightly outside the range on adversarial input and
// clamping is the documented policy, not an error path.
func LCOM(rec *models.TypeRecord) float64 {
	methodCount := len(rec.Methods)
	fieldCount := len(rec.Fields)

	if methodCount <= 1 || fieldCount == 0 {
		return 0.0
	}

	sumMA := 0
	for _, field := range rec.Fields {
		for _, method := range rec.Methods {
			if containsString(method.FieldsAccessed, field.Name) {
				sumMA++
			}
		}
	}

	avgMethodsPerField := float64(sumMA) / float64(fieldCount)
	lcom := (float64(methodCount) - avgMethodsPerField) / (float64(methodCount) - 1)

	if lcom < 0 {
		return 0
	}
	if lcom > 1 {
		return 1
	}
	return lcom
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
