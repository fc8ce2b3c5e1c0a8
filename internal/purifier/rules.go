package purifier

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// defaultTrackingParams are tracking parameters with no common shape.
var defaultTrackingParams = []string{
	"fbclid",
	"gclid",
	"dclid",
	"gbraid",
	"wbraid",
	"msclkid",
	"mc_cid",
	"mc_eid",
	"igshid",
	"igsh",
	"mkt_tok",
	"vero_id",
	"vero_conv",
	"ttclid",
	"twclid",
	"yclid",
	"scid",
	"s_cid",
	"cmpid",
	"icid",
	"ocid",
	"si",
	"spm",
	"spm_id_from",
	"share",
	"share_id",
	"shareid",
	"ref",
	"ref_",
	"ref_src",
	"ref_url",
	"referrer",
	"referrer_id",
	"referral",
	"fb_action_ids",
	"fb_action_types",
	"fb_ref",
	"fb_source",
	"ga_campaign",
	"ga_source",
	"ga_medium",
	"ga_term",
	"ga_content",
	"mibextid",
	"at_campaign",
	"at_medium",
	"at_custom1",
	"at_custom2",
	"at_custom3",
	"at_custom4",
	"soc_src",
	"soc_trk",
	"tag",
}

var (
	defaultTrackingSuffixes = []string{"clid", "clkid"}
	defaultTrackingPrefixes = []string{"ref_", "utm_", "pk_"}
)

// Rules classifies query parameter names as tracking or not.
//
// A Rules value is immutable once built; Extend returns a new value.
type Rules struct {
	names    map[string]struct{}
	keep     map[string]struct{}
	prefixes []string
	suffixes []string
}

// NewRules builds a rule set from exact names, name prefixes and name suffixes.
// All entries are matched case-insensitively.
func NewRules(names, prefixes, suffixes []string) *Rules {
	r := &Rules{
		names: make(map[string]struct{}, len(names)),
		keep:  map[string]struct{}{},
	}
	for _, n := range names {
		r.names[strings.ToLower(n)] = struct{}{}
	}
	r.prefixes = lowerAll(prefixes)
	r.suffixes = lowerAll(suffixes)
	return r
}

// DefaultRules returns the built-in tracking rule set.
func DefaultRules() *Rules {
	return NewRules(defaultTrackingParams, defaultTrackingPrefixes, defaultTrackingSuffixes)
}

// Extend returns a copy of r with additional names and prefixes, and with keep
// names exempted from every rule.
func (r *Rules) Extend(names, prefixes, keep []string) *Rules {
	out := &Rules{
		names:    make(map[string]struct{}, len(r.names)+len(names)),
		keep:     make(map[string]struct{}, len(r.keep)+len(keep)),
		prefixes: lo.Uniq(append(append([]string{}, r.prefixes...), lowerAll(prefixes)...)),
		suffixes: append([]string{}, r.suffixes...),
	}
	for n := range r.names {
		out.names[n] = struct{}{}
	}
	for _, n := range names {
		out.names[strings.ToLower(n)] = struct{}{}
	}
	for n := range r.keep {
		out.keep[n] = struct{}{}
	}
	for _, n := range keep {
		out.keep[strings.ToLower(n)] = struct{}{}
	}
	return out
}

// IsTracking reports whether name is a tracking parameter.
func (r *Rules) IsTracking(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := r.keep[lower]; ok {
		return false
	}
	if _, ok := r.names[lower]; ok {
		return true
	}
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Names returns the exact-match names, sorted.
func (r *Rules) Names() []string {
	names := lo.Keys(r.names)
	sort.Strings(names)
	return names
}

// Prefixes returns the prefix rules in match order.
func (r *Rules) Prefixes() []string {
	return append([]string{}, r.prefixes...)
}

// Suffixes returns the suffix rules in match order.
func (r *Rules) Suffixes() []string {
	return append([]string{}, r.suffixes...)
}

// Kept returns the exempted names, sorted.
func (r *Rules) Kept() []string {
	kept := lo.Keys(r.keep)
	sort.Strings(kept)
	return kept
}

// FilterQuery returns the items of q that are not tracking parameters, in order,
// along with the names of the removed items.
func (r *Rules) FilterQuery(q []QueryItem) (kept []QueryItem, removed []string) {
	kept, dropped := lo.FilterReject(q, func(item QueryItem, _ int) bool {
		return !r.IsTracking(item.Name)
	})
	if len(dropped) == 0 {
		return kept, nil
	}
	removed = lo.Map(dropped, func(item QueryItem, _ int) string {
		return item.Name
	})
	return kept, removed
}

func lowerAll(in []string) []string {
	return lo.Map(in, func(s string, _ int) string {
		return strings.ToLower(s)
	})
}
