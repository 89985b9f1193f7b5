package ndi

import (
	"testing"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func revealedCredential() formdata.Record {
	return formdata.Record{
		"Full Name":     "Tashi Wangmo",
		"ID Number":     "11509001234",
		"Date of Birth": "21/04/1990",
		"Gender":        "F",
		"Nationality":   "Bhutanese",
		"Dzongkhag":     "paro",
		"Gewog":         "Lungnyi",
		"Village":       "Pangbisa",
		"Mobile Number": "17111111",
	}
}

func TestMapCredential_FullCredential(t *testing.T) {
	data := MapCredential(revealedCredential())

	assert.Equal(t, "Tashi Wangmo", data.Get(formdata.FieldApplicantName))
	assert.Equal(t, "11509001234", data.Get(formdata.FieldIdentificationNumber))
	assert.Equal(t, "1990-04-21", data.Get(formdata.FieldDateOfBirth), "credential dates arrive DD/MM/YYYY")
	assert.Equal(t, "female", data.Get(formdata.FieldGender))
	assert.Equal(t, "Bhutanese", data.Get(formdata.FieldNationality))
	assert.Equal(t, "Paro", data.Get(formdata.FieldPermDzongkhag), "dzongkhag resolves to its canonical spelling")
	assert.Equal(t, "Lungnyi", data.Get(formdata.FieldPermGewog))
	assert.Equal(t, "Pangbisa", data.Get(formdata.FieldPermVillage))
	assert.Equal(t, "17111111", data.Get(formdata.FieldMobileNumber))

	assert.True(t, data.IsVerified)
	assert.Contains(t, data.VerifiedFields, formdata.FieldDateOfBirth)
}

func TestMapCredential_UnlistedDzongkhagRejected(t *testing.T) {
	raw := revealedCredential()
	raw["Dzongkhag"] = "Atlantis"

	data := MapCredential(raw)

	assert.Equal(t, "", data.Get(formdata.FieldPermDzongkhag), "address dropdowns only accept listed options")
	assert.NotContains(t, data.VerifiedFields, formdata.FieldPermDzongkhag)
}

func TestMapCredential_CopiesPermanentToCurrentAddress(t *testing.T) {
	data := MapCredential(revealedCredential())

	assert.Equal(t, data.Get(formdata.FieldPermDzongkhag), data.Get(formdata.FieldCurrDzongkhag))
	assert.Equal(t, data.Get(formdata.FieldPermGewog), data.Get(formdata.FieldCurrGewog))
	assert.Equal(t, data.Get(formdata.FieldPermVillage), data.Get(formdata.FieldCurrVillage))
}

func TestMapCredential_KeepsRevealedCurrentAddress(t *testing.T) {
	raw := revealedCredential()
	raw["Current Dzongkhag"] = "Thimphu"

	data := MapCredential(raw)

	assert.Equal(t, "Thimphu", data.Get(formdata.FieldCurrDzongkhag))
	assert.Equal(t, "", data.Get(formdata.FieldCurrGewog), "partial current address is not backfilled")
}

func TestMapCredential_SalutationFromGender(t *testing.T) {
	male := revealedCredential()
	male["Gender"] = "M"
	assert.Equal(t, "mr", MapCredential(male).Get(formdata.FieldSalutation))

	female := revealedCredential()
	female["Gender"] = "Female"
	assert.Equal(t, "ms", MapCredential(female).Get(formdata.FieldSalutation))

	missing := revealedCredential()
	delete(missing, "Gender")
	assert.Equal(t, "", MapCredential(missing).Get(formdata.FieldSalutation))
}

func TestMapCredential_CamelCaseAttributes(t *testing.T) {
	data := MapCredential(formdata.Record{
		"fullName":    "Karma Dorji",
		"idNumber":    "10709005678",
		"dateOfBirth": "1985-02-11",
	})

	assert.Equal(t, "Karma Dorji", data.Get(formdata.FieldApplicantName))
	assert.Equal(t, "10709005678", data.Get(formdata.FieldIdentificationNumber))
	assert.Equal(t, "1985-02-11", data.Get(formdata.FieldDateOfBirth))
}

func TestMapCredential_SnakeCaseAttributes(t *testing.T) {
	data := MapCredential(formdata.Record{
		"full_name": "Karma Dorji",
		"id_number": "10709005678",
	})

	assert.Equal(t, "Karma Dorji", data.Get(formdata.FieldApplicantName))
	assert.Equal(t, "10709005678", data.Get(formdata.FieldIdentificationNumber))
}

func TestMapCredential_TotalOverArbitraryInput(t *testing.T) {
	records := []formdata.Record{
		nil,
		{},
		{"Full Name": nil},
		{"Full Name": []any{"a"}},
		{"Gender": map[string]any{"x": "y"}},
	}

	for _, raw := range records {
		data := MapCredential(raw)

		require.NotNil(t, data.Fields)
		require.NotNil(t, data.VerifiedFields)
		assert.True(t, data.IsVerified)
	}
}

func TestMatchDzongkhag(t *testing.T) {
	assert.Equal(t, "Paro", MatchDzongkhag("paro"))
	assert.Equal(t, "Paro", MatchDzongkhag("  PARO "))
	assert.Equal(t, "Trashigang", MatchDzongkhag("trashigang"))
	assert.Equal(t, "", MatchDzongkhag("Atlantis"))
	assert.Equal(t, "", MatchDzongkhag(""))
}

func TestMatchGewog(t *testing.T) {
	assert.Equal(t, "Lungnyi", MatchGewog("lungnyi"))
	assert.Equal(t, "", MatchGewog("Nowhere"))
}
