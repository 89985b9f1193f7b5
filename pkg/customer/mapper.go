package customer

import (
	"strings"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

// Sentinel values the onboarding API uses in its PEP section. The
// category sentinel is an exact-match contract with the upstream
// system; do not fold its case.
const pepNotApplicable = "Not Applicable"

// recordRules maps the onboarding API's nested customer record onto
// canonical form fields. The API has gone through several naming
// conventions for the same logical fields; each rule lists the known
// spellings in preference order, newest first.
var recordRules = []formdata.Rule{
	{
		Field:   formdata.FieldApplicantName,
		Sources: []string{"personal.party_name", "personal.customer_name", "personal.full_name"},
	},
	{
		Field:     formdata.FieldSalutation,
		Sources:   []string{"personal.salutation", "personal.title"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeSalutation) },
	},
	{
		Field:     formdata.FieldDateOfBirth,
		Sources:   []string{"personal.date_of_birth", "personal.dob", "personal.birth_date"},
		Transform: formdata.FormatDate,
	},
	{
		Field:     formdata.FieldGender,
		Sources:   []string{"personal.gender", "personal.gender_code", "personal.sex"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeGender) },
	},
	{
		Field:     formdata.FieldMaritalStatus,
		Sources:   []string{"personal.marital_status", "personal.civil_status"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeMaritalStatus) },
	},
	{
		Field:     formdata.FieldNationality,
		Sources:   []string{"personal.nationality", "personal.citizenship"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeNationality) },
	},
	{
		Field:     formdata.FieldIdentificationType,
		Sources:   []string{"personal.identification_type", "personal.id_type", "personal.document_type"},
		Transform: func(v string) string { return formdata.Normalize(v, formdata.FieldTypeIdentificationType) },
	},
	{
		Field:   formdata.FieldIdentificationNumber,
		Sources: []string{"personal.identification_number", "personal.cid_number", "personal.id_no"},
	},
	{
		Field:   formdata.FieldTPNNumber,
		Sources: []string{"personal.tpn_number", "personal.tpn", "employment.tpn_number"},
	},
	{
		Field:   formdata.FieldMobileNumber,
		Sources: []string{"contact.mobile_number", "contact.phone_number", "contact.mobile"},
	},
	{
		Field:   formdata.FieldEmail,
		Sources: []string{"contact.email", "contact.email_address"},
	},
	{
		Field: formdata.FieldPermDzongkhag,
		Sources: []string{
			"address.Permanent_address.pty_adr_permanent_dzongkhag",
			"address.Permanent_address.dzongkhag",
			"pty_adr_permanent_dzongkhag",
		},
	},
	{
		Field: formdata.FieldPermGewog,
		Sources: []string{
			"address.Permanent_address.pty_adr_permanent_gewog",
			"address.Permanent_address.gewog",
			"pty_adr_permanent_gewog",
		},
	},
	{
		Field: formdata.FieldPermVillage,
		Sources: []string{
			"address.Permanent_address.pty_adr_permanent_village",
			"address.Permanent_address.village",
			"pty_adr_permanent_village",
		},
	},
	{
		Field: formdata.FieldCurrDzongkhag,
		Sources: []string{
			"address.resident_address.pty_adr_resident_dzongkhag",
			"address.resident_address.dzongkhag",
			"pty_adr_resident_dzongkhag",
		},
	},
	{
		Field: formdata.FieldCurrGewog,
		Sources: []string{
			"address.resident_address.pty_adr_resident_gewog",
			"address.resident_address.gewog",
			"pty_adr_resident_gewog",
		},
	},
	{
		Field: formdata.FieldCurrVillage,
		Sources: []string{
			"address.resident_address.pty_adr_resident_village",
			"address.resident_address.village",
			"pty_adr_resident_village",
		},
	},
	{
		Field:   formdata.FieldOccupation,
		Sources: []string{"employment.occupation", "employment.occupation_type"},
	},
	{
		Field:   formdata.FieldEmployerName,
		Sources: []string{"employment.employer_name", "employment.organization_name"},
	},
	{
		Field:   formdata.FieldPEPCategory,
		Sources: []string{"pep.pep_category", "pep.category"},
	},
	{
		Field:   formdata.FieldRelatedToPEP,
		Sources: []string{"pep.related_to_pep", "pep.pep_related"},
	},
}

// MapRecord flattens a nested onboarding customer record into canonical
// form data. Total over arbitrary input: any missing section or leaf
// simply leaves its field empty. Address text is preserved verbatim;
// the onboarding system is trusted for addresses, unlike the credential
// mapper which only accepts dropdown values.
func MapRecord(raw formdata.Record) formdata.CanonicalFormData {
	data := formdata.New()

	for field, value := range formdata.Extract(raw, recordRules, false) {
		data.Set(field, value)
	}

	// the record often carries the salutation only as a title prefix
	// baked into the name
	name := data.Get(formdata.FieldApplicantName)
	salutation, stripped := splitSalutation(name)
	if data.Get(formdata.FieldSalutation) == "" {
		data.Set(formdata.FieldSalutation, salutation)
	}
	data.Set(formdata.FieldApplicantName, stripped)

	applyPEPFlags(data)

	data.Seal(true)
	return data
}

// splitSalutation recognizes a leading title prefix on the full name
// and splits it off. Unrecognized prefixes leave the name untouched.
func splitSalutation(name string) (salutation, rest string) {
	first, remainder, ok := strings.Cut(name, " ")
	if !ok {
		return "", name
	}

	candidate := strings.ToLower(strings.TrimSuffix(first, "."))
	switch candidate {
	case "mr", "mrs", "ms", "dr", "miss":
		return candidate, strings.TrimSpace(remainder)
	default:
		return "", name
	}
}

func applyPEPFlags(data formdata.CanonicalFormData) {
	category := data.Get(formdata.FieldPEPCategory)
	switch {
	case category == "":
		data.Set(formdata.FieldIsPEP, "")
	case category == pepNotApplicable:
		data.Set(formdata.FieldIsPEP, "no")
	default:
		data.Set(formdata.FieldIsPEP, "yes")
	}

	related := data.Get(formdata.FieldRelatedToPEP)
	switch {
	case related == "":
		// leave unset; the applicant declares it manually
	case strings.EqualFold(related, "yes"):
		data.Set(formdata.FieldRelatedToPEP, "yes")
	default:
		data.Set(formdata.FieldRelatedToPEP, "no")
	}
}
