// Package identity resolves the presented login secret into one of the two
// fixed chat participants. No persistent user record exists; whoever holds
// a configured secret is that participant.
package identity

import (
	"crypto/subtle"

	"cofre/internal/server/config"
)

// Participant describes one side of the conversation: the display name,
// the bubble colors the chat page uses, and the counterpart's name shown
// in the header.
type Participant struct {
	Name        string
	OwnColor    string
	OtherColor  string
	Counterpart string
}

var (
	him = Participant{Name: "Ele", OwnColor: "#005c4b", OtherColor: "#202c33", Counterpart: "Ela"}
	her = Participant{Name: "Ela", OwnColor: "#c2185b", OtherColor: "#202c33", Counterpart: "Ele"}
)

// Resolve maps a submitted secret to a participant. The boolean is false
// when the secret matches neither configured value; an empty secret never
// matches, even if a configured secret is also empty.
func Resolve(secret string, cfg *config.Config) (Participant, bool) {
	if secret == "" {
		return Participant{}, false
	}
	if secretEqual(secret, cfg.SecretHim) {
		return him, true
	}
	if secretEqual(secret, cfg.SecretHer) {
		return her, true
	}
	return Participant{}, false
}

func secretEqual(presented, configured string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
