package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// https://html.spec.whatwg.org/#valid-e-mail-address
var emailRegex = regexp.MustCompile(`^(?P<name>[a-zA-Z0-9.!#$%&'*+/=?^_ \x60{|}~-]+)@(?P<domain>[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*)$`)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidatePhoneNo(phoneNo string) error {
	phoneNo = strings.TrimSpace(phoneNo)

	if phoneNo == "" {
		return fmt.Errorf("phone number cannot be empty")
	}

	if !phoneRegex.MatchString(phoneNo) {
		return fmt.Errorf("invalid phone number format")
	}

	return nil
}
