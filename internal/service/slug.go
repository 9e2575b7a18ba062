package service

import "strings"

// slugCode derives a snake_case code from a display name, used for vendors
// and product categories when no code is supplied.
func slugCode(name string) string {
	code := strings.TrimSpace(strings.ToLower(name))
	fields := strings.FieldsFunc(code, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	return strings.Join(fields, "_")
}
