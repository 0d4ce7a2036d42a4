// Package validation checks decoded request bodies and collects every
// failing field instead of stopping at the first one.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Violations []FieldError

func (v Violations) Empty() bool { return len(v) == 0 }

func (v *Violations) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Check inspects a present value and returns a message when it is rejected.
type Check[T any] func(T) string

// Required validates a field that must be present on create. With partial set
// an absent field is accepted, but a supplied null never is.
func Required[T any](v *Violations, partial bool, name string, f Field[T], checks ...Check[T]) {
	switch {
	case !f.Set:
		if !partial {
			v.Add(name, "is required")
		}
	case f.Null:
		v.Add(name, "is required")
	case f.Invalid:
		v.Add(name, "must be "+kind[T]())
	default:
		run(v, name, f.Value, checks)
	}
}

// Optional validates a field that may be absent or null.
func Optional[T any](v *Violations, name string, f Field[T], checks ...Check[T]) {
	switch {
	case !f.Set, f.Null:
	case f.Invalid:
		v.Add(name, "must be "+kind[T]())
	default:
		run(v, name, f.Value, checks)
	}
}

func run[T any](v *Violations, name string, value T, checks []Check[T]) {
	for _, check := range checks {
		if msg := check(value); msg != "" {
			v.Add(name, msg)
			return
		}
	}
}

func kind[T any]() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "a string"
	case int, int64:
		return "an integer"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("a %T", zero)
	}
}

func Length(min, max int) Check[string] {
	return func(s string) string {
		n := utf8.RuneCountInString(s)
		if n < min || n > max {
			return fmt.Sprintf("must be between %d and %d characters", min, max)
		}
		return ""
	}
}

func MinLength(min int) Check[string] {
	return func(s string) string {
		if utf8.RuneCountInString(s) < min {
			return fmt.Sprintf("must be at least %d characters", min)
		}
		return ""
	}
}

func MaxLength(max int) Check[string] {
	return func(s string) string {
		if utf8.RuneCountInString(s) > max {
			return fmt.Sprintf("must be at most %d characters", max)
		}
		return ""
	}
}

func NotBlank() Check[string] {
	return func(s string) string {
		if s == "" {
			return "must not be empty"
		}
		return ""
	}
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func Email() Check[string] {
	return match(emailPattern, "must be a valid email address")
}

func Phone() Check[string] {
	return match(phonePattern, "must be a valid phone number")
}

// Clock accepts a 24h HH:mm time of day.
func Clock() Check[string] {
	return match(clockPattern, "must be a time in HH:mm format")
}

// ClockOrTimestamp accepts HH:mm or an RFC 3339 timestamp.
func ClockOrTimestamp() Check[string] {
	return func(s string) string {
		if clockPattern.MatchString(s) {
			return ""
		}
		if _, err := time.Parse(time.RFC3339, s); err == nil {
			return ""
		}
		return "must be a time in HH:mm format or an RFC 3339 timestamp"
	}
}

func Date() Check[string] {
	return func(s string) string {
		if _, err := model.ParseDate(s); err != nil {
			return "must be a valid date"
		}
		return ""
	}
}

func match(re *regexp.Regexp, message string) Check[string] {
	return func(s string) string {
		if !re.MatchString(s) {
			return message
		}
		return ""
	}
}

func OneOf(values ...string) Check[string] {
	return func(s string) string {
		for _, allowed := range values {
			if s == allowed {
				return ""
			}
		}
		return "must be one of: " + strings.Join(values, ", ")
	}
}

type number interface {
	~int | ~int64 | ~float64
}

func Positive[N number]() Check[N] {
	return func(n N) string {
		if n <= 0 {
			return "must be greater than 0"
		}
		return ""
	}
}

func NonNegative[N number]() Check[N] {
	return func(n N) string {
		if n < 0 {
			return "must be 0 or greater"
		}
		return ""
	}
}
