package purifier

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultASINPatterns are the Amazon product path shapes, in match order.
// Each pattern captures the 10-character ASIN in its first group.
var DefaultASINPatterns = []string{
	"/dp/([A-Z0-9]{10})",
	"/gp/product/([A-Z0-9]{10})",
	"/gp/aw/d/([A-Z0-9]{10})",
	"/product/([A-Z0-9]{10})",
	"/exec/obidos/ASIN/([A-Z0-9]{10})",
	"/ASIN/([A-Z0-9]{10})",
}

var amazonHostPrefixes = []string{"www.", "m.", "smile."}

// ASINMatcher extracts a product identifier from a URL path.
type ASINMatcher interface {
	MatchASIN(path string) (string, bool)
}

type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) MatchASIN(path string) (string, bool) {
	groups := m.re.FindStringSubmatch(path)
	if len(groups) < 2 || groups[1] == "" {
		return "", false
	}
	return groups[1], true
}

func (m regexpMatcher) String() string {
	return m.re.String()
}

// CompileASINPatterns compiles patterns case-insensitively. Patterns that fail to
// compile are logged, reported in errs and left out of the returned matchers.
func CompileASINPatterns(patterns []string, logger zerolog.Logger) (matchers []ASINMatcher, errs []error) {
	matchers = make([]ASINMatcher, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			perr := &PatternError{Pattern: p, Err: err}
			logger.Warn().Err(err).Str("pattern", p).Msg("Failed to compile Amazon ASIN pattern, skipping")
			errs = append(errs, perr)
			continue
		}
		if re.NumSubexp() < 1 {
			perr := &PatternError{Pattern: p, Err: errNoCaptureGroup}
			logger.Warn().Str("pattern", p).Msg("Amazon ASIN pattern has no capture group, skipping")
			errs = append(errs, perr)
			continue
		}
		matchers = append(matchers, regexpMatcher{re: re})
	}
	return matchers, errs
}

// IsAmazonHost reports whether host is an Amazon storefront. AWS hosts are excluded.
func IsAmazonHost(host string) bool {
	lower := strings.ToLower(host)
	return strings.Contains(lower, "amazon.") && !strings.HasSuffix(lower, "amazonaws.com")
}

// CanonicalAmazonHost lower-cases host and strips the first matching
// "www.", "m." or "smile." prefix.
func CanonicalAmazonHost(host string) string {
	lower := strings.ToLower(host)
	for _, prefix := range amazonHostPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimPrefix(lower, prefix)
		}
	}
	return lower
}

// ExtractASIN finds the product identifier of an Amazon URL, trying the path
// matchers in order and then an "asin" query parameter. The result is upper-cased.
func ExtractASIN(c *Components, matchers []ASINMatcher) (string, bool) {
	path := c.Path()
	for _, m := range matchers {
		if asin, ok := m.MatchASIN(path); ok {
			return strings.ToUpper(asin), true
		}
	}

	for _, item := range c.Query {
		if strings.EqualFold(item.Name, "asin") && item.HasValue && item.Value != "" {
			return strings.ToUpper(item.Value), true
		}
	}
	return "", false
}

// CanonicalAmazonURL builds https://<host>/dp/<ASIN> for an Amazon product URL.
// It reports false when no ASIN can be found.
func CanonicalAmazonURL(c *Components, matchers []ASINMatcher) (string, string, bool) {
	asin, ok := ExtractASIN(c, matchers)
	if !ok {
		return "", "", false
	}

	canonical := url.URL{
		Scheme: "https",
		Host:   CanonicalAmazonHost(c.Host()),
		Path:   "/dp/" + asin,
	}
	return canonical.String(), asin, true
}
