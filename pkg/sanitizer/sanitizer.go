package sanitizer

import (
	"net/url"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

func collapseWhitespace(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
			continue
		}
		result.WriteRune(r)
		lastWasSpace = false
	}
	return result.String()
}

func SanitizeName(input string) string {
	return Pipeline{trim, collapseWhitespace}.Apply(input)
}

func SanitizeEmail(input string) string {
	return Pipeline{trim, lower}.Apply(input)
}

// SanitizeText trims free text such as bios and booking notes. Inner line
// breaks are kept.
func SanitizeText(input string) string {
	return trim(input)
}

func SanitizeSlot(input string) string {
	return Pipeline{trim, collapseWhitespace}.Apply(input)
}

// SanitizeSlots normalizes every slot label and drops empty and repeated
// labels. The first occurrence keeps its position.
func SanitizeSlots(slots []string) []string {
	return SanitizeSlice(slots, SanitizeSlot)
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// SanitizeURL returns an absolute https URL or "" when input cannot be
// parsed. Paths and query values keep their case.
func SanitizeURL(input string) string {
	s := trim(input)
	if s == "" {
		return ""
	}

	lowered := lower(s)
	if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = lower(u.Scheme)
	u.Host = lower(u.Host)

	q := u.Query()
	qClean := url.Values{}
	for k, v := range q {
		if strings.HasPrefix(lower(k), "utm_") {
			continue
		}
		for _, val := range v {
			if val = trim(val); val != "" {
				qClean.Add(k, val)
			}
		}
	}
	u.RawQuery = qClean.Encode()

	return u.String()
}
