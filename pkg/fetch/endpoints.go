package fetch

import (
	"fmt"
	"strings"
)

const (
	// MaxIdentifierLength is the longest identifier accepted for a fetch
	MaxIdentifierLength = 30
)

// ProfileURL constructs the public profile URL for an identifier
func ProfileURL(baseURL, identifier string) string {
	return fmt.Sprintf("%s/%s/", strings.TrimRight(baseURL, "/"), identifier)
}

// ValidIdentifier checks if an identifier is acceptable for a profile URL.
// Identifiers may contain letters, digits, periods and underscores.
func ValidIdentifier(identifier string) bool {
	if identifier == "" || len(identifier) > MaxIdentifierLength {
		return false
	}

	for _, char := range identifier {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '_') {
			return false
		}
	}

	return true
}

// SanitizeIdentifier strips decoration commonly pasted along with an
// identifier: a leading @ and trailing slashes or spaces
func SanitizeIdentifier(identifier string) string {
	if identifier == "" {
		return ""
	}

	if identifier[0] == '@' {
		identifier = identifier[1:]
	}

	for len(identifier) > 0 && (identifier[len(identifier)-1] == '/' || identifier[len(identifier)-1] == ' ') {
		identifier = identifier[:len(identifier)-1]
	}

	return identifier
}
