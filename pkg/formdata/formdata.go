package formdata

// Canonical form field names. Both mappers write these exact keys so the
// wizard's first step can pre-fill without knowing which source verified
// the applicant.
const (
	FieldSalutation           = "salutation"
	FieldApplicantName        = "applicantName"
	FieldDateOfBirth          = "dateOfBirth"
	FieldGender               = "gender"
	FieldMaritalStatus        = "maritalStatus"
	FieldNationality          = "nationality"
	FieldIdentificationType   = "identificationType"
	FieldIdentificationNumber = "identificationNumber"
	FieldTPNNumber            = "tpnNumber"
	FieldMobileNumber         = "mobileNumber"
	FieldEmail                = "email"
	FieldPermDzongkhag        = "permDzongkhag"
	FieldPermGewog            = "permGewog"
	FieldPermVillage          = "permVillage"
	FieldCurrDzongkhag        = "currDzongkhag"
	FieldCurrGewog            = "currGewog"
	FieldCurrVillage          = "currVillage"
	FieldOccupation           = "occupation"
	FieldEmployerName         = "employerName"
	FieldPEPCategory          = "pepCategory"
	FieldIsPEP                = "isPep"
	FieldRelatedToPEP         = "relatedToPep"
)

// VerifiedChecklist is the fixed set of fields that count as "verified"
// when populated from an external source. Fields outside this list
// (employment, PEP declarations) are pre-filled but stay self-declared.
var VerifiedChecklist = []string{
	FieldSalutation,
	FieldApplicantName,
	FieldDateOfBirth,
	FieldGender,
	FieldMaritalStatus,
	FieldNationality,
	FieldIdentificationType,
	FieldIdentificationNumber,
	FieldTPNNumber,
	FieldMobileNumber,
	FieldEmail,
	FieldPermDzongkhag,
	FieldPermGewog,
	FieldPermVillage,
	FieldCurrDzongkhag,
	FieldCurrGewog,
	FieldCurrVillage,
}

// CanonicalFormData is the flat, normalized output of a mapper and the
// only artifact handed off to the wizard. Every checklist field in
// VerifiedFields is guaranteed non-empty at creation time.
type CanonicalFormData struct {
	Fields         map[string]string `json:"fields"`
	VerifiedFields []string          `json:"verifiedFields"`
	IsVerified     bool              `json:"isVerified"`
}

func New() CanonicalFormData {
	return CanonicalFormData{
		Fields:         make(map[string]string),
		VerifiedFields: []string{},
	}
}

func (d CanonicalFormData) Get(field string) string {
	return d.Fields[field]
}

func (d CanonicalFormData) Set(field, value string) {
	d.Fields[field] = value
}

// Seal computes VerifiedFields from the checklist and marks the data
// verified. Call once, after all fields are written.
func (d *CanonicalFormData) Seal(verified bool) {
	fields := make([]string, 0, len(VerifiedChecklist))
	for _, name := range VerifiedChecklist {
		if d.Fields[name] != "" {
			fields = append(fields, name)
		}
	}
	d.VerifiedFields = fields
	d.IsVerified = verified
}
