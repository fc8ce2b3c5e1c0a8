package purifier

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// QueryItem is a single name/value pair of a query string.
//
// Name and Value hold the decoded text. Items parsed from an input URL also keep
// their original encoded form, so retained items are written back byte for byte.
type QueryItem struct {
	Name     string
	Value    string
	HasValue bool

	raw string
}

// NewQueryItem builds a query item with a value.
func NewQueryItem(name, value string) QueryItem {
	return QueryItem{Name: name, Value: value, HasValue: true}
}

// Encoded returns the item as it appears in a query string.
func (q QueryItem) Encoded() string {
	if q.raw != "" || (q.Name == "" && !q.HasValue) {
		return q.raw
	}
	if !q.HasValue {
		return escapeQueryComponent(q.Name)
	}
	return escapeQueryComponent(q.Name) + "=" + escapeQueryComponent(q.Value)
}

// ParseQuery splits an encoded query string into ordered items.
// Only "&" separates items; "+" is kept literally.
func ParseQuery(rawQuery string) []QueryItem {
	if rawQuery == "" {
		return nil
	}

	parts := strings.Split(rawQuery, "&")
	items := make([]QueryItem, 0, len(parts))
	for _, part := range parts {
		item := QueryItem{raw: part}
		name, value, found := strings.Cut(part, "=")
		item.Name = unescapeQueryComponent(name)
		if found {
			item.Value = unescapeQueryComponent(value)
			item.HasValue = true
		}
		items = append(items, item)
	}
	return items
}

// EncodeQuery joins items back into an encoded query string.
func EncodeQuery(items []QueryItem) string {
	encoded := make([]string, len(items))
	for i, item := range items {
		encoded[i] = item.Encoded()
	}
	return strings.Join(encoded, "&")
}

func unescapeQueryComponent(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func escapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Components is the structural view of a URL the pipeline works on.
type Components struct {
	u *url.URL

	// Query is the ordered list of main query items.
	Query []QueryItem
	// Fragment is the encoded fragment without the leading "#". Empty means absent.
	Fragment string
}

// ParseComponents parses s into its components.
func ParseComponents(s string) (*Components, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	c := &Components{
		u:        u,
		Query:    ParseQuery(u.RawQuery),
		Fragment: u.EscapedFragment(),
	}
	return c, nil
}

// Scheme returns the URL scheme.
func (c *Components) Scheme() string {
	return c.u.Scheme
}

// Host returns the host name without port.
func (c *Components) Host() string {
	return c.u.Hostname()
}

// Path returns the decoded path.
func (c *Components) Path() string {
	return c.u.Path
}

// Valid reports whether both scheme and host are present.
func (c *Components) Valid() bool {
	return c != nil && c.u.Scheme != "" && c.Host() != ""
}

// String serializes the components. An empty query or fragment is omitted entirely.
func (c *Components) String() (string, error) {
	u := *c.u
	host, err := asciiHost(u.Host)
	if err != nil {
		return "", fmt.Errorf("serialize URL: %w", err)
	}
	u.Host = host
	u.RawQuery = EncodeQuery(c.Query)
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""

	out := u.String()
	if c.Fragment != "" {
		out += "#" + c.Fragment
	}

	if _, err := url.Parse(out); err != nil {
		return "", fmt.Errorf("serialize URL: %w", err)
	}
	return out, nil
}

// asciiHost converts an internationalized host to its IDNA (punycode) form.
// The port, if any, is kept.
func asciiHost(hostport string) (string, error) {
	if isASCII(hostport) {
		return hostport, nil
	}

	host, port := hostport, ""
	if h, p, err := net.SplitHostPort(hostport); err == nil {
		host, port = h, p
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("host %q: %w", host, err)
	}
	if port != "" {
		return net.JoinHostPort(ascii, port), nil
	}
	return ascii, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
