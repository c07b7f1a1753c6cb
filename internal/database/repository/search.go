package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into a lower-cased LIKE pattern that
// matches it literally anywhere in the value. Use it with
// "LOWER(col) LIKE ? ESCAPE '\'" so sqlite and postgres agree.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}
