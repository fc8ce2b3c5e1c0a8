package purifier

import (
	"regexp"
	"strings"
)

// bareDomain matches text that starts like a host name with a TLD, e.g. "example.com/page".
var bareDomain = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]*\.[A-Za-z]{2,}`)

// NormalizeInput trims raw and prepends "https://" when it looks like a bare domain.
// Text that already carries a scheme separator, or that does not look like a domain,
// is returned trimmed and otherwise untouched.
func NormalizeInput(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", emptyInputError(raw)
	}

	if strings.Contains(trimmed, "://") {
		return trimmed, nil
	}

	if bareDomain.MatchString(trimmed) {
		return "https://" + trimmed, nil
	}

	return trimmed, nil
}
