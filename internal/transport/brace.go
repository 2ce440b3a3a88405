package transport

import (
	"fmt"
	"strings"
)

// BraceURL joins base and names into a single "{a,b,c}" alternation URL, as
// understood by curl's URL globbing.
func BraceURL(base string, names []string) string {
	return strings.TrimSuffix(base, "/") + "/{" + strings.Join(names, ",") + "}"
}

// ExpandBraces expands every "{a,b}" set in raw into the list of URLs it
// denotes, left to right. Nested sets are not supported.
func ExpandBraces(raw string) ([]string, error) {
	open := strings.IndexByte(raw, '{')
	if open < 0 {
		if strings.IndexByte(raw, '}') >= 0 {
			return nil, fmt.Errorf("unmatched '}' in %q", raw)
		}
		return []string{raw}, nil
	}
	closing := strings.IndexByte(raw[open:], '}')
	if closing < 0 {
		return nil, fmt.Errorf("unmatched '{' in %q", raw)
	}
	closing += open
	inner := raw[open+1 : closing]
	if strings.IndexByte(inner, '{') >= 0 {
		return nil, fmt.Errorf("nested braces are not supported in %q", raw)
	}

	rest, err := ExpandBraces(raw[closing+1:])
	if err != nil {
		return nil, err
	}

	prefix := raw[:open]
	var out []string
	for _, alt := range strings.Split(inner, ",") {
		for _, suffix := range rest {
			out = append(out, prefix+alt+suffix)
		}
	}
	return out, nil
}
