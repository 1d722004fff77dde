package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var june2022 = time.Date(2022, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("a@b.fr"))
	assert.True(t, ValidateEmail("ab@c"))
	assert.False(t, ValidateEmail("a@b"))
	assert.False(t, ValidateEmail("sans-arobase"))
	assert.False(t, ValidateEmail(nil))
	assert.False(t, ValidateEmail(42))
}

func TestValidateCardNumber(t *testing.T) {
	assert.True(t, ValidateCardNumber("1234567890"))
	assert.True(t, ValidateCardNumber("4242 4242 4242 4242"))
	assert.False(t, ValidateCardNumber("123456789"))
	assert.False(t, ValidateCardNumber("12345678901234567890"))
	assert.False(t, ValidateCardNumber(4242424242424242))
}

func TestValidateCVC(t *testing.T) {
	assert.True(t, ValidateCVC("123"))
	assert.True(t, ValidateCVC("1234"))
	assert.False(t, ValidateCVC("12"))
	assert.False(t, ValidateCVC("12345"))
	assert.False(t, ValidateCVC(123))
}

func TestValidateCardExpiration(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"05/24", true},
		{"05/22", false},
		{"06/22", true},
		{"12/21", false},
		{"01/99", true},
		{"13/30", false},
		{"00/30", false},
		{"5/24", false},
		{"05/2024", false},
		{"xx05/24", false},
		{"", false},
		{nil, false},
		{524, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidateCardExpiration(tc.in, june2022), "input %#v", tc.in)
	}
}

func TestValidateSubmissionReportsEveryField(t *testing.T) {
	errs := ValidateSubmission(Submission{}, june2022)
	assert.Len(t, errs, 12)
	assert.Equal(t, "Veuillez entrer une adresse email valide.", errs[FieldEmail])
	assert.Equal(t, "Veuillez entrer un CVC.", errs[FieldCVC])
}

func TestValidateSubmissionValid(t *testing.T) {
	assert.Nil(t, ValidateSubmission(validSubmission(), june2022))
}

func TestValidateSubmissionSingleField(t *testing.T) {
	sub := validSubmission()
	sub.ExpirationDate = "05/22"
	errs := ValidateSubmission(sub, june2022)
	assert.Equal(t, FieldErrors{
		FieldExpirationDate: "Veuillez entrer une date d'expiration de carte bancaire valide.",
	}, errs)
}
