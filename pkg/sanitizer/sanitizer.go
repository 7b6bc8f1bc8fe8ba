package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var emailPipeline = Pipeline{
	strings.TrimSpace,
	strings.ToLower,
}

// SanitizeEmail lowercases the address so the unique index is case-insensitive.
func SanitizeEmail(email string) string {
	return emailPipeline.Apply(email)
}

// SanitizeOptional applies fn to *s in place, leaving nil untouched.
func SanitizeOptional(s *string, fn Strategy) *string {
	if s == nil {
		return nil
	}
	v := fn(*s)
	return &v
}
