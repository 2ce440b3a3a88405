package transport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// WriteOut is the curl --write-out format. Each transfer appends one
// sentinel line carrying its HTTP status.
const WriteOut = "\n**http_status=%{http_code}**\n"

// trailerRE matches the sentinel line. The closing "**" is optional so
// that output from older write-out formats still parses.
var trailerRE = regexp.MustCompile(`^\*\*http_status=(\d{3})(\*\*)?$`)

// ParseOutput splits transfer output into response lines and status
// trailers. Blank lines are dropped and every line is trimmed. Lines that
// are not sentinels are response lines wherever they appear, so stray
// diagnostics on stdout cannot be mistaken for the status.
func ParseOutput(out string) (lines []string, statuses []int, err error) {
	for _, raw := range strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := trailerRE.FindStringSubmatch(line); m != nil {
			code, convErr := strconv.Atoi(m[1])
			if convErr != nil {
				return nil, nil, fmt.Errorf("invalid status trailer %q: %w", line, convErr)
			}
			statuses = append(statuses, code)
			continue
		}
		lines = append(lines, line)
	}
	if len(statuses) == 0 {
		return lines, nil, fmt.Errorf("no http_status trailer in transfer output")
	}
	return lines, statuses, nil
}
