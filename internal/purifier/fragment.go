package purifier

import "strings"

// CleanFragment filters tracking parameters from a query embedded in a fragment,
// as used by client-side routes like "route?utm_source=x&id=5".
// A fragment without "?" is returned unchanged.
func (r *Rules) CleanFragment(fragment string) (string, []string) {
	head, tail, found := strings.Cut(fragment, "?")
	if !found {
		return fragment, nil
	}

	kept, removed := r.FilterQuery(ParseQuery(tail))
	cleaned := EncodeQuery(kept)
	if cleaned == "" {
		return head, removed
	}
	return head + "?" + cleaned, removed
}
