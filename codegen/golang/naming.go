package golang

import (
	"strings"
	"unicode"
)

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// dedent strips the common leading whitespace of all non-empty lines.
func dedent(code string) []string {
	lines := strings.Split(code, "\n")
	prefix := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := 0
		for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		if prefix < 0 || n < prefix {
			prefix = n
		}
	}
	if prefix <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= prefix && strings.TrimSpace(line) != "" {
			out[i] = line[prefix:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return out
}
