package compose

import "strings"

const ellipsis = "..."

// Normalize appends suffix to body and truncates body so the result is at most
// limit runes. The suffix is never cut. A body that already ends in suffix has
// it removed first, so Normalize(Normalize(x)) == Normalize(x).
func Normalize(body, suffix string, limit int) string {
	body = strings.TrimSuffix(body, suffix)

	maxBody := limit - len([]rune(suffix))
	r := []rune(body)
	if len(r) > maxBody {
		cut := maxBody - len(ellipsis)
		if cut < 0 {
			cut = 0
		}
		body = string(r[:cut]) + ellipsis
	}
	return body + suffix
}
