package domain

import (
	"time"
)

// Paste is one public paste an account was found in.
type Paste struct {
	// Source is the paste service, e.g. Pastebin, Pastie, Slexy, Ghostbin,
	// QuickLeak, JustPaste, AdHocUrl, PermanentOptOut, OptOut.
	Source string `json:"Source"`
	// ID as given by the source service. Source and ID together resolve the URL.
	ID    string     `json:"Id"`
	Title *string    `json:"Title,omitempty"`
	Date  *time.Time `json:"Date,omitempty"`
	// EmailCount is computed upstream.
	EmailCount int `json:"EmailCount"`
}

// Pastes is never nil when returned by a lookup; empty means none found.
type Pastes []Paste
