package formdata

import "strings"

type FieldType string

const (
	FieldTypeGender             FieldType = "gender"
	FieldTypeMaritalStatus      FieldType = "maritalStatus"
	FieldTypeNationality        FieldType = "nationality"
	FieldTypeCountry            FieldType = "country"
	FieldTypeIdentificationType FieldType = "identificationType"
	FieldTypeBankName           FieldType = "bankName"
	FieldTypeSalutation         FieldType = "salutation"
)

const (
	CanonicalCitizenshipID = "Citizenship ID"
	CanonicalPassport      = "Passport"
	CanonicalWorkPermit    = "Work Permit"
)

// Synonym tables keyed by lowercased input. Upstream systems disagree on
// codes and abbreviations for the same logical value; these tables fold
// the known spellings into one canonical label.
var synonyms = map[FieldType]map[string]string{
	FieldTypeGender: {
		"m":      "male",
		"male":   "male",
		"f":      "female",
		"female": "female",
		"o":      "other",
		"other":  "other",
	},
	FieldTypeMaritalStatus: {
		"s":         "single",
		"single":    "single",
		"unmarried": "single",
		"m":         "married",
		"married":   "married",
		"d":         "divorced",
		"divorced":  "divorced",
		"w":         "widowed",
		"widow":     "widowed",
		"widowed":   "widowed",
		"sep":       "separated",
		"separated": "separated",
	},
	FieldTypeNationality: {
		"bt":        "Bhutanese",
		"btn":       "Bhutanese",
		"bhu":       "Bhutanese",
		"bhutan":    "Bhutanese",
		"bhutanese": "Bhutanese",
		"in":        "Indian",
		"ind":       "Indian",
		"india":     "Indian",
		"indian":    "Indian",
	},
	FieldTypeCountry: {
		"bt":     "Bhutan",
		"btn":    "Bhutan",
		"bhu":    "Bhutan",
		"bhutan": "Bhutan",
		"in":     "India",
		"ind":    "India",
		"india":  "India",
	},
	FieldTypeIdentificationType: {
		"cid":                       CanonicalCitizenshipID,
		"citizenship id":            CanonicalCitizenshipID,
		"citizenship id card":       CanonicalCitizenshipID,
		"citizenship identity card": CanonicalCitizenshipID,
		"passport":                  CanonicalPassport,
		"pp":                        CanonicalPassport,
		"wp":                        CanonicalWorkPermit,
		"work permit":               CanonicalWorkPermit,
	},
	FieldTypeBankName: {
		"bnb":      "Bhutan National Bank",
		"bnbl":     "Bhutan National Bank",
		"bob":      "Bank of Bhutan",
		"bobl":     "Bank of Bhutan",
		"bdb":      "Bhutan Development Bank",
		"bdbl":     "Bhutan Development Bank",
		"tbank":    "T Bank",
		"t-bank":   "T Bank",
		"t bank":   "T Bank",
		"dpnb":     "Druk PNB Bank",
		"druk pnb": "Druk PNB Bank",
	},
}

var knownSalutations = map[string]bool{
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"dr":   true,
	"miss": true,
}

// Normalize folds a raw external label into its canonical value for the
// given field type. Unknown values come back trimmed but otherwise
// untouched; the normalizer never invents a value. Total, never errors.
func Normalize(raw string, ft FieldType) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if ft == FieldTypeSalutation {
		candidate := strings.ToLower(strings.TrimSuffix(trimmed, "."))
		if knownSalutations[candidate] {
			return candidate
		}
		return trimmed
	}

	table, ok := synonyms[ft]
	if !ok {
		return trimmed
	}

	if canonical, ok := table[strings.ToLower(trimmed)]; ok {
		return canonical
	}

	return trimmed
}
