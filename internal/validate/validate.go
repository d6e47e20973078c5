package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one per-field violation, shaped like the API's error
// array entries.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupInput is a sanitized signup payload: email lowercased and
// trimmed, name trimmed and title-cased, password trimmed.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// Signup normalizes and validates signup fields. It returns the sanitized
// input together with every violation found, never short-circuiting on
// the first one.
func Signup(email, name, password string) (SignupInput, []FieldError) {
	in := SignupInput{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		// cases.Caser carries state, so build one per call.
		Name:     cases.Title(language.English).String(strings.TrimSpace(name)),
		Password: strings.TrimSpace(password),
	}

	var errs []FieldError
	if !emailRe.MatchString(in.Email) {
		errs = append(errs, FieldError{Param: "email", Msg: "Invalid value"})
	}
	if utf8.RuneCountInString(in.Name) < 2 {
		errs = append(errs, FieldError{Param: "name", Msg: "Invalid value"})
	}
	if !passwordOK(in.Password) {
		errs = append(errs, FieldError{Param: "password", Msg: "Invalid value"})
	}
	return in, errs
}

// passwordOK enforces the signup policy: at least 8 characters with one
// lowercase letter, one uppercase letter and one digit.
func passwordOK(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// Idea validates an idea payload: content 1-255 characters after
// trimming, each score an integer between 1 and 10. It returns the
// trimmed content.
func Idea(content string, impact, ease, confidence int) (string, []FieldError) {
	content = strings.TrimSpace(content)

	var errs []FieldError
	if n := utf8.RuneCountInString(content); n < 1 || n > 255 {
		errs = append(errs, FieldError{Param: "content", Msg: "Invalid value"})
	}
	for _, score := range []struct {
		param string
		value int
	}{
		{"impact", impact},
		{"ease", ease},
		{"confidence", confidence},
	} {
		if score.value < 1 || score.value > 10 {
			errs = append(errs, FieldError{Param: score.param, Msg: "Invalid value"})
		}
	}
	return content, errs
}
