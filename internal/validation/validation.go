// Package validation implements the field-level rule engine used by the
// submission endpoints. A rule set runs every rule against a decoded JSON
// payload and accumulates {field, message} errors in rule order: a failing
// check stops the remaining checks for that one field, while sibling fields
// are still checked in full.
package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError describes a single failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is an ordered list of field errors.
type Errors []FieldError

// Document is a decoded JSON payload.
type Document map[string]interface{}

// Rule validates some part of a document.
type Rule interface {
	Apply(doc Document) Errors
}

// RuleSet is an ordered list of rules applied to a whole submission.
type RuleSet []Rule

// Validate runs every rule and returns all accumulated errors. An empty
// result means the submission passed. The same payload always produces the
// same errors in the same order.
func (rs RuleSet) Validate(doc Document) Errors {
	var errs Errors
	for _, rule := range rs {
		errs = append(errs, rule.Apply(doc)...)
	}
	return errs
}

// Value is a field value extracted from a document.
type Value struct {
	Raw     interface{}
	Present bool
}

// Text returns the trimmed string form of the value. Numbers and booleans
// are rendered the way they appear on the wire; missing values and
// non-scalar values render empty.
func (v Value) Text() string {
	if !v.Present {
		return ""
	}
	switch raw := v.Raw.(type) {
	case string:
		return strings.TrimSpace(raw)
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(raw)
	default:
		return ""
	}
}

// Empty reports whether the value is missing or has no content.
func (v Value) Empty() bool {
	if !v.Present || v.Raw == nil {
		return true
	}
	if arr, ok := v.Raw.([]interface{}); ok {
		return len(arr) == 0
	}
	switch v.Raw.(type) {
	case float64, bool:
		return false
	}
	return v.Text() == ""
}

// Lookup resolves a dotted path ("address.0", "orderDetails.2") against the
// document, traversing nested objects and arrays.
func Lookup(doc Document, path string) Value {
	var current interface{} = map[string]interface{}(doc)
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			next, ok := node[part]
			if !ok {
				return Value{}
			}
			current = next
		case []interface{}:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return Value{}
			}
			current = node[idx]
		default:
			return Value{}
		}
	}
	return Value{Raw: current, Present: true}
}

// fieldRule runs a chain of checks against one field.
type fieldRule struct {
	path   string
	checks []Check
}

// Field builds a rule that applies checks to the value at path, in order,
// stopping at the first failure.
func Field(path string, checks ...Check) Rule {
	return fieldRule{path: path, checks: checks}
}

func (r fieldRule) Apply(doc Document) Errors {
	value := Lookup(doc, r.path)
	for _, check := range r.checks {
		if !check.ok(value) {
			return Errors{{Field: r.path, Message: check.message}}
		}
	}
	return nil
}

// groupRule validates a block of rules unless an escape condition holds.
// This is the disjunctive "oneOf" shape: either the block validates or the
// escape field equals the escape value.
type groupRule struct {
	escapePath  string
	escapeValue string
	rules       []Rule
}

// Group builds a conditional block: when the value at escapePath equals
// escapeValue the block is skipped entirely, otherwise every rule in the
// block runs and its errors are reported.
func Group(escapePath, escapeValue string, rules ...Rule) Rule {
	return groupRule{escapePath: escapePath, escapeValue: escapeValue, rules: rules}
}

func (g groupRule) Apply(doc Document) Errors {
	if Lookup(doc, g.escapePath).Text() == g.escapeValue {
		return nil
	}
	var errs Errors
	for _, rule := range g.rules {
		errs = append(errs, rule.Apply(doc)...)
	}
	return errs
}

// switchRule dispatches a rule block on the value of a tag field.
type switchRule struct {
	path  string
	cases map[string][]Rule
}

// Switch builds a cross-field rule: the block registered for the tag value
// at path runs; other blocks are skipped. An unknown tag value runs nothing,
// leaving the tag field's own checks to report it.
func Switch(path string, cases map[string][]Rule) Rule {
	return switchRule{path: path, cases: cases}
}

func (s switchRule) Apply(doc Document) Errors {
	rules, ok := s.cases[Lookup(doc, s.path).Text()]
	if !ok {
		return nil
	}
	var errs Errors
	for _, rule := range rules {
		errs = append(errs, rule.Apply(doc)...)
	}
	return errs
}
