package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE wildcards in user text so it matches literally
// inside a pattern using the default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
