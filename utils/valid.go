package utils

import (
	"errors"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// MaxImageSize caps profile picture uploads
const MaxImageSize = 5 * 1024 * 1024

var (
	scriptRegex = regexp.MustCompile(`<script[^>]*>.*?</script>`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneStrip  = regexp.MustCompile(`[^\d+]`)
)

// SanitizeInput sanitizes user input to prevent XSS and injection attacks
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = scriptRegex.ReplaceAllString(input, "")
	input = html.EscapeString(input)

	// Remove control characters
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// SanitizeEmail sanitizes and validates an email address
func SanitizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", errors.New("invalid email format")
	}
	return email, nil
}

// SanitizePhone sanitizes and validates a phone number
func SanitizePhone(phone string) (string, error) {
	// phone is optional
	if strings.TrimSpace(phone) == "" {
		return "", nil
	}

	phone = phoneStrip.ReplaceAllString(phone, "")
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	if len(phone) < 8 || len(phone) > 16 {
		return "", errors.New("invalid phone number length")
	}
	return phone, nil
}

// ValidateFile validates image upload size and type
func ValidateFile(filename string, size int64) error {
	if size > MaxImageSize {
		return errors.New("file too large")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
	if !allowedExts[ext] {
		return errors.New("invalid file type")
	}
	return nil
}

// SanitizeStringArray sanitizes an array of strings
func SanitizeStringArray(inputs []string) []string {
	if inputs == nil {
		return nil
	}
	sanitized := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = SanitizeInput(input)
	}
	return sanitized
}

// SanitizeMap sanitizes all string values in a map
func SanitizeMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	sanitized := make(map[string]string, len(input))
	for k, v := range input {
		sanitized[SanitizeInput(k)] = SanitizeInput(v)
	}
	return sanitized
}
