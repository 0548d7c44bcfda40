package ports

import "strings"

// Relation names accepted in expand query parameters. The set is closed:
// unknown names are ignored by ParseExpand.
const (
	ExpandUser      = "user"
	ExpandDeveloper = "developer"
	ExpandGame      = "game"
)

// ExpandSet is the enumerated set of relations a read request asked to have
// resolved inline.
type ExpandSet map[string]struct{}

// Has reports whether the relation was requested.
func (s ExpandSet) Has(relation string) bool {
	_, ok := s[relation]
	return ok
}

// ParseExpand parses a comma-separated expand parameter, keeping only known
// relation names.
func ParseExpand(raw string) ExpandSet {
	set := make(ExpandSet)
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case ExpandUser, ExpandDeveloper, ExpandGame:
			set[strings.TrimSpace(part)] = struct{}{}
		}
	}
	return set
}
