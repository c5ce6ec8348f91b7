package normalize

import (
	"strings"

	"finadash/pkg/models"
)

// Gender spellings observed across the personnel endpoints. Keys are
// lowercased before lookup; anything unmapped becomes Bilinmiyor.
var genderLabels = map[string]string{
	"erkek": models.GenderMale,
	"e":     models.GenderMale,
	"bay":   models.GenderMale,
	"male":  models.GenderMale,
	"m":     models.GenderMale,
	"kadın": models.GenderFemale,
	"kadin": models.GenderFemale,
	"k":     models.GenderFemale,
	"bayan": models.GenderFemale,
	"female": models.GenderFemale,
	"f":      models.GenderFemale,
}

var maritalLabels = map[string]string{
	"evli":    models.MaritalMarried,
	"married": models.MaritalMarried,
	"bekar":   models.MaritalSingle,
	"bekâr":   models.MaritalSingle,
	"single":  models.MaritalSingle,
}

// CanonicalGender maps a raw gender spelling onto the closed label set.
func CanonicalGender(raw string) string {
	if label, ok := genderLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return label
	}
	return models.GenderUnknown
}

// CanonicalMaritalStatus maps a raw marital status onto the closed label set.
func CanonicalMaritalStatus(raw string) string {
	if label, ok := maritalLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return label
	}
	return models.MaritalUnknown
}

// CanonicalCurrency trims and uppercases a currency code. Anything that is
// not exactly three letters falls back to models.FallbackCurrency rather
// than propagating an empty or malformed code into aggregation keys.
func CanonicalCurrency(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return models.FallbackCurrency
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return models.FallbackCurrency
		}
	}
	return code
}
