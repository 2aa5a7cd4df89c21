// Package template renders merge-tag templates of the form "Dear {{owner_name}}".
// Unknown tags pass through unchanged so that an older template keeps working
// when a context stops supplying one of its tags.
package template

import "regexp"

var tagPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Render substitutes {{tag}} occurrences in tmpl with values from ctx.
// Tags missing from ctx are left exactly as written.
func Render(tmpl string, ctx map[string]string) string {
	return tagPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		tag := tagPattern.FindStringSubmatch(match)[1]
		if value, ok := ctx[tag]; ok {
			return value
		}
		return match
	})
}
