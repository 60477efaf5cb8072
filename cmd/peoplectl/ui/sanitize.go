package ui

import "strings"

// sanitizeText strips control characters (including escape, so no ANSI
// sequences survive) from server-supplied strings before they reach the
// renderer. The terminal analogue of HTML-escaping untrusted text.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
