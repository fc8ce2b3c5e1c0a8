// Package purifier strips tracking parameters from URLs and rewrites Amazon
// product links into their short canonical form.
//
// The pipeline is pure: a Purifier holds only immutable rule sets and compiled
// patterns and can be shared between goroutines.
package purifier

import (
	"github.com/rs/zerolog"

	urlutil "github.com/law-makers/purify/internal/utils/url"
	"github.com/law-makers/purify/pkg/models"
)

// serialize rebuilds the cleaned URL. Tests replace it to exercise the fallback.
var serialize = (*Components).String

// Options configures a Purifier. Zero values select the built-in defaults.
type Options struct {
	// Rules classifies tracking parameters. Nil means DefaultRules.
	Rules *Rules
	// Matchers extract ASINs from Amazon paths, tried in order.
	// Nil means DefaultASINPatterns.
	Matchers []ASINMatcher
	// Normalize applies structural normalization to generic (non-Amazon) output.
	Normalize bool
	Logger    zerolog.Logger
}

// Purifier runs the cleaning pipeline.
type Purifier struct {
	rules     *Rules
	matchers  []ASINMatcher
	normalize bool
	logger    zerolog.Logger
}

// New creates a Purifier from opts.
func New(opts Options) *Purifier {
	p := &Purifier{
		rules:     opts.Rules,
		matchers:  opts.Matchers,
		normalize: opts.Normalize,
		logger:    opts.Logger,
	}
	if p.rules == nil {
		p.rules = DefaultRules()
	}
	if p.matchers == nil {
		// The built-in patterns are known to compile.
		p.matchers, _ = CompileASINPatterns(DefaultASINPatterns, opts.Logger)
	}
	return p
}

// NewDefault creates a Purifier with the built-in rules and patterns.
func NewDefault() *Purifier {
	return New(Options{Logger: zerolog.Nop()})
}

// Rules returns the tracking rule set in use.
func (p *Purifier) Rules() *Rules {
	return p.rules
}

// Matchers returns the ASIN matchers in use.
func (p *Purifier) Matchers() []ASINMatcher {
	return append([]ASINMatcher{}, p.matchers...)
}

// Clean returns the canonical form of raw.
func (p *Purifier) Clean(raw string) (string, error) {
	res, err := p.Purify(raw)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Purify cleans raw and reports what was done.
//
// Amazon product URLs short-circuit to https://<host>/dp/<ASIN> and skip every
// other step. Other URLs lose their tracking parameters from both the query and
// any query embedded in the fragment. If the cleaned structure cannot be
// serialized, the normalized input is returned unchanged.
func (p *Purifier) Purify(raw string) (*models.Result, error) {
	normalized, err := NormalizeInput(raw)
	if err != nil {
		return nil, err
	}

	c, err := ParseComponents(normalized)
	if err != nil {
		return nil, invalidInputError(raw, err)
	}
	if !c.Valid() {
		return nil, invalidInputError(raw, nil)
	}

	host := c.Host()
	res := &models.Result{
		Input:      raw,
		Normalized: normalized,
		Host:       host,
		Domain:     urlutil.RegistrableDomain(host),
	}

	if IsAmazonHost(host) {
		if canonical, asin, ok := CanonicalAmazonURL(c, p.matchers); ok {
			res.Output = canonical
			res.Amazon = true
			res.ASIN = asin
			for _, item := range c.Query {
				res.Removed = append(res.Removed, item.Name)
			}
			p.logger.Debug().Str("host", host).Str("asin", asin).Msg("Canonicalized Amazon product URL")
			return res, nil
		}
		p.logger.Debug().Str("host", host).Msg("Amazon host without ASIN, using generic cleaning")
	}

	kept, removed := p.rules.FilterQuery(c.Query)
	c.Query = kept
	res.Removed = removed

	if c.Fragment != "" {
		fragment, fragRemoved := p.rules.CleanFragment(c.Fragment)
		c.Fragment = fragment
		res.Removed = append(res.Removed, fragRemoved...)
	}

	out, err := serialize(c)
	if err != nil {
		p.logger.Warn().Err(err).Str("url", normalized).Msg("Failed to rebuild URL, returning input unchanged")
		res.Output = normalized
		res.Fallback = true
		return res, nil
	}

	if p.normalize {
		if n, err := urlutil.Normalize(out); err == nil {
			out = n
		} else {
			p.logger.Debug().Err(err).Str("url", out).Msg("Normalization skipped")
		}
	}

	if len(res.Removed) > 0 {
		p.logger.Debug().Strs("removed", res.Removed).Msg("Removed tracking parameters")
	}
	res.Output = out
	return res, nil
}
