package domain

import "strings"

// Slugify lowercases name and collapses runs of non-alphanumeric
// characters into single hyphens: "Team Workshop!" -> "team-workshop".
// Per-host uniqueness suffixes are the store's concern.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
