package parser

import "strings"

// ParseItemIDs splits a comma separated id list, trimming blanks and
// dropping empty entries.
func ParseItemIDs(raw string) []string {
	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ParseKeywords collapses runs of whitespace in a search phrase.
func ParseKeywords(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
