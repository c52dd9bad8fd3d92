package database

import (
	"strconv"
	"strings"
)

// Rebind converts a query written with ? placeholders to the positional
// $n form when the target engine is postgres. Queries are authored once
// in the sqlite form.
func Rebind(dbType, query string) string {
	if dbType != "postgres" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
