package membership

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Codes look like PREFIX-NUMBER, e.g. "A-7" or "EA-142". The prefix set is
// fixed by the organization; the number is strictly positive.
var allowedPrefixes = map[string]bool{
	"A":  true,
	"F":  true,
	"E":  true,
	"EA": true,
	"MI": true,
	"S":  true,
}

var codeRegex = regexp.MustCompile(`^([A-Za-z]+)-([0-9]+)$`)

// NormalizeCode validates a raw code and returns its canonical form:
// uppercase prefix, number without leading zeros ("a-007" -> "A-7").
func NormalizeCode(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	m := codeRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}

	prefix := strings.ToUpper(m[1])
	if !allowedPrefixes[prefix] {
		return "", fmt.Errorf("%w: unknown prefix %q", ErrInvalidCode, prefix)
	}

	num, err := strconv.Atoi(m[2])
	if err != nil || num < 1 {
		return "", fmt.Errorf("%w: number must be >= 1", ErrInvalidCode)
	}

	return fmt.Sprintf("%s-%d", prefix, num), nil
}
