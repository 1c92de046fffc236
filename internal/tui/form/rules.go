package form

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one declarative constraint on a field's value. Rules are the
// single source of truth for validity; rendering is the form's job.
type Rule struct {
	check func(string) string
}

// Check returns an error message, or "" when the value passes.
func (r Rule) Check(value string) string { return r.check(value) }

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Required rejects blank values.
func Required() Rule {
	return Rule{check: func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "This field is required."
		}
		return ""
	}}
}

// Email accepts addresses of the usual user@host.tld shape. Blank values
// pass; combine with Required when the field is mandatory.
func Email() Rule {
	return Rule{check: func(v string) string {
		if v == "" {
			return ""
		}
		if !emailPattern.MatchString(v) {
			return "Please enter a valid email address."
		}
		return ""
	}}
}

// MinLen requires at least n characters. Blank values pass.
func MinLen(n int) Rule {
	return Rule{check: func(v string) string {
		if v == "" {
			return ""
		}
		if len([]rune(v)) < n {
			return fmt.Sprintf("Must be at least %d characters.", n)
		}
		return ""
	}}
}

// MaxLen allows at most n characters.
func MaxLen(n int) Rule {
	return Rule{check: func(v string) string {
		if len([]rune(v)) > n {
			return fmt.Sprintf("Must be at most %d characters.", n)
		}
		return ""
	}}
}

// Pattern requires the value to match re. Blank values pass.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return Rule{check: func(v string) string {
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return msg
		}
		return ""
	}}
}
