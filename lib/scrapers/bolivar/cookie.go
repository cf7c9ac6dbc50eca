package bolivar

import (
	"net/http"
	"regexp"
	"strings"
)

var cookieSeparatorRegex = regexp.MustCompile(`[\n;]+`)

// ParseCookieHeader turns a pasted Cookie header into discrete cookies.
// People paste these in many shapes: with or without the "Cookie:"
// label, one cookie per line, or the standard semicolon form; all of
// them normalize to the same pair list.
func ParseCookieHeader(raw string) []*http.Cookie {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	if strings.HasPrefix(strings.ToLower(value), "cookie:") {
		value = strings.TrimSpace(value[len("cookie:"):])
	}
	value = strings.ReplaceAll(value, "\r", "")

	var cookies []*http.Cookie
	seen := map[string]int{}
	for _, part := range cookieSeparatorRegex.Split(value, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		cookie := &http.Cookie{Name: name, Value: strings.TrimSpace(val)}
		// later occurrences overwrite earlier ones, same as a jar would
		if i, ok := seen[name]; ok {
			cookies[i] = cookie
			continue
		}
		seen[name] = len(cookies)
		cookies = append(cookies, cookie)
	}
	return cookies
}
