package advisor

import (
	"regexp"
	"strings"

	"logsift/pkg/session"
)

// actorPhrases pick a candidate actor name out of phrases like
// "user john", "username: john" or "for john".
var actorPhrases = []*regexp.Regexp{
	regexp.MustCompile(`user\s+(\w+)`),
	regexp.MustCompile(`username[:\s]+(\w+)`),
	regexp.MustCompile(`for\s+(\w+)`),
}

// DetectActor finds an actor identifier mentioned in free text. Known
// identifier values are checked first; then phrase patterns yield a
// candidate that must still resolve to a known value. Matching is
// case-insensitive.
func DetectActor(sess *session.Session, question string) (string, bool) {
	query := strings.ToLower(question)

	for _, actor := range sess.Actors() {
		if strings.Contains(query, strings.ToLower(actor)) {
			return actor, true
		}
	}

	for _, re := range actorPhrases {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		candidate := m[1]
		for _, actor := range sess.Actors() {
			if strings.Contains(strings.ToLower(actor), candidate) {
				return actor, true
			}
		}
	}

	return "", false
}
