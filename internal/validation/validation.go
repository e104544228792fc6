// Package validation provides declarative form validation with per-field
// error aggregation.
package validation

import (
	"strconv"
	"strings"
)

// Violations maps a field name to the ordered list of messages recorded for
// that field.
type Violations map[string][]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records a message for a field, preserving insertion order.
func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Rule checks a single raw field value and carries the message reported when
// the check fails.
type Rule struct {
	Check   func(value string) bool
	Message string
}

// Field declares the rules applied to one form field.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is an ordered set of field declarations.
type Schema []Field

// Validate applies every rule of every field against the raw values and
// aggregates all failures. Validation never stops at the first bad field:
// the result reports every failing field at once so a form can surface all
// problems in a single round trip. Missing fields are checked as empty
// strings.
func (s Schema) Validate(values map[string]string) Violations {
	v := make(Violations)
	for _, f := range s {
		raw := values[f.Name]
		for _, rule := range f.Rules {
			if !rule.Check(raw) {
				v.Add(f.Name, rule.Message)
			}
		}
	}
	return v
}

// ParseNumber coerces a raw field value to a number. It applies the same
// coercion GreaterThan validates against, so a value that passed that rule
// always parses.
func ParseNumber(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

// NonEmpty fails when the value is empty or only whitespace.
func NonEmpty(message string) Rule {
	return Rule{
		Message: message,
		Check: func(value string) bool {
			return strings.TrimSpace(value) != ""
		},
	}
}

// GreaterThan coerces the value to a number and fails unless it is strictly
// greater than n. A value that does not parse as a number fails too.
func GreaterThan(n float64, message string) Rule {
	return Rule{
		Message: message,
		Check: func(value string) bool {
			f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			return err == nil && f > n
		},
	}
}

// OneOf fails unless the value is exactly one of the allowed values.
func OneOf(message string, allowed ...string) Rule {
	return Rule{
		Message: message,
		Check: func(value string) bool {
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
	}
}
