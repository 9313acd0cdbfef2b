package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule patterns
var (
	// External presentation ids are URL-safe tokens
	GIDPattern = `^[A-Za-z0-9_-]{8,255}$`

	// Password min length
	PasswordMinLength = 8

	// Course name length bounds
	CourseNameMinLength = 1
	CourseNameMaxLength = 255
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	GID *regexp.Regexp
}{
	GID: regexp.MustCompile(GIDPattern),
}

// StringValidation describes the checks applied to one string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}
	if !v.Required && v.Value == "" {
		return true
	}

	length := len([]rune(v.Value))
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// FieldErrors collects validation messages keyed by field name
type FieldErrors map[string][]string

// Add records a message for field
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Empty reports whether no error was recorded
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// ValidateCourse checks the user supplied fields of a new course
func ValidateCourse(name string, gid *string) FieldErrors {
	errs := FieldErrors{}

	name = strings.TrimSpace(name)
	if !NewStringValidation(name).WithMinLength(CourseNameMinLength).WithMaxLength(CourseNameMaxLength).Validate() {
		errs.Add("name", "Course name must be between 1 and 255 characters.")
	}

	if gid != nil && !NewStringValidation(*gid).WithRequired(false).WithPattern(CompiledPatterns.GID).Validate() {
		errs.Add("gid", "Enter a valid presentation id.")
	}

	return errs
}

// ValidatePassword checks the strength rules applied at registration
func ValidatePassword(password string) FieldErrors {
	errs := FieldErrors{}
	if len(password) < PasswordMinLength {
		errs.Add("password", "Password must be at least 8 characters long.")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		errs.Add("password", "Password must contain at least one letter and one digit.")
	}
	return errs
}
