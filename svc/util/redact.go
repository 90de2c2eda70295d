package util

import (
	"regexp"
)

var (
	hashPattern   = regexp.MustCompile(`[A-Fa-f0-9]{35,}`)
	secretPattern = regexp.MustCompile(`(?i)(password|token|secret|key)=([^\s&]+)`)
)

// RedactToken keeps the first and last four characters of an API key.
func RedactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "[TOKEN-REDACTED]"
	}
	return token[:4] + "..." + token[len(token)-4:] + "[REDACTED]"
}

// RedactEmail keeps the domain and the first character of the local part.
func RedactEmail(email string) string {
	at := -1
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			at = i
			break
		}
	}
	if at <= 0 {
		return "[REDACTED]"
	}
	return email[:1] + "***" + email[at:]
}

// RedactLogLine masks full SHA-1 hashes and key=value secrets.
func RedactLogLine(line string) string {
	line = hashPattern.ReplaceAllString(line, "[HASH-REDACTED]")
	line = secretPattern.ReplaceAllString(line, "$1=[REDACTED]")
	return line
}
