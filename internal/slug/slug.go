package slug

import "strings"

// Make derives a URL-safe slug from a title: lowercase, with every run of
// non-alphanumeric characters collapsed into a single hyphen and no leading
// or trailing hyphen. The transform is collision-naive; uniqueness is
// enforced by the store's constraints, not here.
func Make(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}
