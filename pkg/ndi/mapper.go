package ndi

import (
	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

// credentialRules maps revealed credential attributes onto canonical
// form fields. Attribute keys differ across schema versions (display
// names, camelCase, snake_case); the loose extractor tries each listed
// spelling plus its snake_case form.
var credentialRules = []formdata.Rule{
	{
		Field:   formdata.FieldApplicantName,
		Sources: []string{"Full Name", "fullName", "name"},
	},
	{
		Field:   formdata.FieldIdentificationNumber,
		Sources: []string{"ID Number", "idNumber", "cidNumber", "id"},
	},
	{
		Field:     formdata.FieldIdentificationType,
		Sources:   []string{"ID Type", "idType", "identificationType"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeIdentificationType) },
	},
	{
		Field:     formdata.FieldDateOfBirth,
		Sources:   []string{"Date of Birth", "dateOfBirth", "dob"},
		Transform: formdata.FormatFlexibleDate,
	},
	{
		Field:     formdata.FieldGender,
		Sources:   []string{"Gender", "gender"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeGender) },
	},
	{
		Field:     formdata.FieldNationality,
		Sources:   []string{"Nationality", "nationality", "citizenship"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeNationality) },
	},
	{
		Field:   formdata.FieldMobileNumber,
		Sources: []string{"Mobile Number", "mobileNumber", "phoneNumber"},
	},
	{
		Field:     formdata.FieldPermDzongkhag,
		Sources:   []string{"Dzongkhag", "dzongkhag", "permanentDzongkhag"},
		Transform: MatchDzongkhag,
	},
	{
		Field:     formdata.FieldPermGewog,
		Sources:   []string{"Gewog", "gewog", "permanentGewog"},
		Transform: MatchGewog,
	},
	{
		Field:   formdata.FieldPermVillage,
		Sources: []string{"Village", "village", "permanentVillage"},
	},
	{
		Field:     formdata.FieldCurrDzongkhag,
		Sources:   []string{"Current Dzongkhag", "currentDzongkhag"},
		Transform: MatchDzongkhag,
	},
	{
		Field:     formdata.FieldCurrGewog,
		Sources:   []string{"Current Gewog", "currentGewog"},
		Transform: MatchGewog,
	},
	{
		Field:   formdata.FieldCurrVillage,
		Sources: []string{"Current Village", "currentVillage"},
	},
}

// MapCredential maps a revealed foundational-ID credential into
// canonical form data. Total over arbitrary input: absent or malformed
// attributes become empty fields, never errors.
func MapCredential(raw formdata.Record) formdata.CanonicalFormData {
	data := formdata.New()

	for field, value := range formdata.Extract(raw, credentialRules, true) {
		data.Set(field, value)
	}

	// the credential carries a single address; mirror it into the
	// current-address fields when none were revealed
	if data.Get(formdata.FieldCurrDzongkhag) == "" &&
		data.Get(formdata.FieldCurrGewog) == "" &&
		data.Get(formdata.FieldCurrVillage) == "" {
		data.Set(formdata.FieldCurrDzongkhag, data.Get(formdata.FieldPermDzongkhag))
		data.Set(formdata.FieldCurrGewog, data.Get(formdata.FieldPermGewog))
		data.Set(formdata.FieldCurrVillage, data.Get(formdata.FieldPermVillage))
	}

	data.Set(formdata.FieldSalutation, salutationForGender(data.Get(formdata.FieldGender)))

	data.Seal(true)
	return data
}

func salutationForGender(gender string) string {
	switch gender {
	case "male":
		return "mr"
	case "female":
		return "ms"
	default:
		return ""
	}
}
