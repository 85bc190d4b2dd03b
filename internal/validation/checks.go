package validation

import (
	"regexp"
	"unicode/utf8"
)

// Check is a single predicate over a field value, paired with the message
// reported when it fails.
type Check struct {
	ok      func(v Value) bool
	message string
}

var (
	alphaPattern   = regexp.MustCompile(`^[A-Za-z]+$`)
	numericPattern = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^(\+?1[-.\s]?)?(\([0-9]{3}\)|[0-9]{3})[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}$`)
	zipPattern     = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
)

// Required fails on missing or empty values. It must come first in a chain
// so later checks can assume the field is filled in.
func Required(message string) Check {
	return Check{
		ok:      func(v Value) bool { return !v.Empty() },
		message: message,
	}
}

// Length fails when the trimmed value is outside the inclusive rune-count
// bounds.
func Length(min, max int, message string) Check {
	return Check{
		ok: func(v Value) bool {
			n := utf8.RuneCountInString(v.Text())
			return n >= min && n <= max
		},
		message: message,
	}
}

// MinLength fails when the trimmed value is shorter than min runes.
func MinLength(min int, message string) Check {
	return Check{
		ok:      func(v Value) bool { return utf8.RuneCountInString(v.Text()) >= min },
		message: message,
	}
}

// MaxLength fails when the trimmed value exceeds max runes.
func MaxLength(max int, message string) Check {
	return Check{
		ok:      func(v Value) bool { return utf8.RuneCountInString(v.Text()) <= max },
		message: message,
	}
}

// Matches fails unless the whole trimmed value satisfies the pattern.
func Matches(pattern, message string) Check {
	re := regexp.MustCompile(`\A(?:` + pattern + `)\z`)
	return Check{
		ok:      func(v Value) bool { return re.MatchString(v.Text()) },
		message: message,
	}
}

// Equals fails unless the trimmed value equals expected exactly.
func Equals(expected, message string) Check {
	return Check{
		ok:      func(v Value) bool { return v.Text() == expected },
		message: message,
	}
}

// Alpha fails unless the value contains letters only.
func Alpha(message string) Check {
	return Check{
		ok:      func(v Value) bool { return alphaPattern.MatchString(v.Text()) },
		message: message,
	}
}

// Numeric fails unless the value is a numeric string.
func Numeric(message string) Check {
	return Check{
		ok:      func(v Value) bool { return numericPattern.MatchString(v.Text()) },
		message: message,
	}
}

// Boolean fails unless the value is a boolean or a boolean string.
func Boolean(message string) Check {
	return Check{
		ok: func(v Value) bool {
			t := v.Text()
			return t == "true" || t == "false"
		},
		message: message,
	}
}

// Email fails unless the value looks like an email address.
func Email(message string) Check {
	return Check{
		ok:      func(v Value) bool { return emailPattern.MatchString(v.Text()) },
		message: message,
	}
}

// Phone fails unless the value is a US phone number.
func Phone(message string) Check {
	return Check{
		ok:      func(v Value) bool { return phonePattern.MatchString(v.Text()) },
		message: message,
	}
}

// ZipCode fails unless the value is a US postal code.
func ZipCode(message string) Check {
	return Check{
		ok:      func(v Value) bool { return zipPattern.MatchString(v.Text()) },
		message: message,
	}
}

// Array fails unless the raw value is a JSON array.
func Array(message string) Check {
	return Check{
		ok: func(v Value) bool {
			_, ok := v.Raw.([]interface{})
			return ok
		},
		message: message,
	}
}
