// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package security

import (
	"net/mail"
	"regexp"
)

var e164Regex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`) // ITU-T E.164

// IsEmail reports whether the string parses as an email address.
// mail.ParseAddress is surprisingly strict and is enough here; deliverability
// is the mail provider's problem.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// IsE164 reports basic E.164 compliance of a phone number.
func IsE164(number string) bool {
	return e164Regex.MatchString(number)
}
