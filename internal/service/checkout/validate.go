package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var expirationPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)

// ValidateEmail is intentionally permissive: anything longer than three
// characters holding an @.
func ValidateEmail(v any) bool {
	s, ok := v.(string)
	return ok && utf8.RuneCountInString(s) > 3 && strings.Contains(s, "@")
}

func ValidateCardNumber(v any) bool {
	s, ok := v.(string)
	n := utf8.RuneCountInString(s)
	return ok && n > 9 && n < 20
}

func ValidateCVC(v any) bool {
	s, ok := v.(string)
	n := utf8.RuneCountInString(s)
	return ok && n > 2 && n < 5
}

// ValidateCardExpiration accepts an MM/YY string for the current month or later.
func ValidateCardExpiration(v any, now time.Time) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	m := expirationPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}

	currentYear := now.Year() % 100
	if year < currentYear {
		return false
	}
	if year == currentYear {
		return month >= int(now.Month())
	}
	return true
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

const (
	FieldEmail          = "email"
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldAddress        = "address"
	FieldPostalCode     = "postalCode"
	FieldCity           = "city"
	FieldCountry        = "country"
	FieldPhone          = "phone"
	FieldCardNumber     = "cardNumber"
	FieldNameOnCard     = "nameOnCard"
	FieldExpirationDate = "expirationDate"
	FieldCVC            = "cvc"
)

// ValidateSubmission checks every field and reports all failures at once.
func ValidateSubmission(sub Submission, now time.Time) FieldErrors {
	errs := FieldErrors{}
	check := func(field string, valid bool, message string) {
		if !valid {
			errs[field] = message
		}
	}
	required := func(s string) bool { return s != "" }

	check(FieldEmail, ValidateEmail(sub.Email), "Veuillez entrer une adresse email valide.")
	check(FieldFirstName, required(sub.FirstName), "Veuillez entrer un prénom.")
	check(FieldLastName, required(sub.LastName), "Veuillez entrer un nom.")
	check(FieldAddress, required(sub.Address), "Veuillez entrer une adresse.")
	check(FieldPostalCode, required(sub.PostalCode), "Veuillez entrer un code postal.")
	check(FieldCity, required(sub.City), "Veuillez entrer une ville.")
	check(FieldCountry, required(sub.Country), "Veuillez entrer un pays.")
	check(FieldPhone, required(sub.Phone), "Veuillez entrer un numéro de téléphone.")
	check(FieldCardNumber, ValidateCardNumber(sub.CardNumber), "Veuillez entrer un numéro de carte bancaire valide.")
	check(FieldNameOnCard, required(sub.NameOnCard), "Veuillez entrer un nom.")
	check(FieldExpirationDate, ValidateCardExpiration(sub.ExpirationDate, now), "Veuillez entrer une date d'expiration de carte bancaire valide.")
	check(FieldCVC, ValidateCVC(sub.CVC), "Veuillez entrer un CVC.")

	if len(errs) == 0 {
		return nil
	}
	return errs
}
