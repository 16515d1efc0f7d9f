package util

import (
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterRegex = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex  = regexp.MustCompile(`[0-9]`)
)

// ValidateEmail checks an address stage by stage so the caller gets a message
// naming the first specific problem, not just a regex mismatch. Returns ""
// when the address is acceptable.
func ValidateEmail(email string) string {
	trimmed := strings.TrimSpace(email)

	if trimmed == "" {
		return "Email address is required"
	}
	if strings.ContainsAny(trimmed, " \t") {
		return "Email cannot contain spaces"
	}

	atCount := strings.Count(trimmed, "@")
	if atCount == 0 {
		return "Email must contain @ symbol"
	}
	if atCount > 1 {
		return "Email cannot contain multiple @ symbols"
	}

	local, domain, _ := strings.Cut(trimmed, "@")
	if local == "" {
		return "Email address is incomplete (missing text before @)"
	}
	if domain == "" {
		return "Email address is incomplete (missing domain after @)"
	}
	if !strings.Contains(domain, ".") {
		return "Email domain must contain a dot (e.g., @example.com)"
	}

	ext := domain[strings.LastIndex(domain, ".")+1:]
	if len(ext) < 2 {
		return "Email domain extension is too short (e.g., .com, .edu)"
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "Email domain cannot start or end with a dot"
	}
	if strings.Contains(domain, "..") {
		return "Email domain cannot contain consecutive dots"
	}

	if !emailRegex.MatchString(trimmed) {
		return "Please enter a valid email address (e.g., name@example.com)"
	}
	return ""
}

// ValidatePassword enforces the signup password rules. Returns "" when the
// password is acceptable.
func ValidatePassword(password string) string {
	if password == "" {
		return "Please enter a password"
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters"
	}
	if !letterRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return "Password must contain both letters and numbers"
	}
	return ""
}

// NormalizeEmail lowers and trims an address for case-insensitive comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
