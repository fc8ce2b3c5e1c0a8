package urlutil

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
	"golang.org/x/net/publicsuffix"
)

// normalizeFlags are safe structural normalizations: they never reorder the
// query or drop the fragment.
const normalizeFlags = purell.FlagLowercaseScheme |
	purell.FlagLowercaseHost |
	purell.FlagUppercaseEscapes |
	purell.FlagRemoveDefaultPort |
	purell.FlagRemoveDotSegments |
	purell.FlagRemoveDuplicateSlashes

// IsWebURL reports whether s is an absolute http or https URL with a host
func IsWebURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	return u.Host != ""
}

// RegistrableDomain returns the eTLD+1 of host, or "" for IP addresses and
// hosts that are themselves public suffixes.
func RegistrableDomain(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}

// Normalize applies structural normalization to an absolute URL.
func Normalize(s string) (string, error) {
	n, err := purell.NormalizeURLString(s, normalizeFlags)
	if err != nil {
		return "", fmt.Errorf("normalize URL: %w", err)
	}
	return n, nil
}
