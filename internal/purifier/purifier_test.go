package purifier

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	p := NewDefault()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "amazon product with ref path and tracking",
			in:   "https://www.amazon.com/Some-Product-Name/dp/B08N5WRWNW/ref=sr_1_1?keywords=x&utm_source=google",
			want: "https://amazon.com/dp/B08N5WRWNW",
		},
		{
			name: "query and fragment query",
			in:   "https://example.com/?fbclid=abc&keep=1#section?gclid=xyz&k=2",
			want: "https://example.com/?keep=1#section?k=2",
		},
		{
			name: "bare domain",
			in:   "example.com/page?utm_source=x",
			want: "https://example.com/page",
		},
		{
			name: "nothing to remove",
			in:   "https://example.com/a/b?id=1&sort=asc#top",
			want: "https://example.com/a/b?id=1&sort=asc#top",
		},
		{
			name: "fragment query fully removed",
			in:   "https://app.example.com/#/route?utm_source=x",
			want: "https://app.example.com/#/route",
		},
		{
			name: "whitespace around input",
			in:   "  https://example.com/x?utm_medium=social  \n",
			want: "https://example.com/x",
		},
		{
			name: "encoded values survive",
			in:   "https://example.com/search?q=a%26b%3Dc&gclid=1&next=%2Fhome%3Fx%3D1",
			want: "https://example.com/search?q=a%26b%3Dc&next=%2Fhome%3Fx%3D1",
		},
		{
			name: "amazon without asin falls through",
			in:   "https://www.amazon.com/s?k=headphones&tag=aff-20&ref=nb_sb_noss",
			want: "https://www.amazon.com/s?k=headphones",
		},
		{
			name: "amazon asin query parameter",
			in:   "https://m.amazon.co.jp/gp/offer-listing?asin=b0abcdefgh&smid=1",
			want: "https://amazon.co.jp/dp/B0ABCDEFGH",
		},
		{
			name: "aws host is not amazon",
			in:   "https://bucket.s3.amazonaws.com/dp/B08N5WRWNW?utm_source=x&X-Amz-Signature=abc",
			want: "https://bucket.s3.amazonaws.com/dp/B08N5WRWNW?X-Amz-Signature=abc",
		},
		{
			name: "empty fragment dropped",
			in:   "https://example.com/x#",
			want: "https://example.com/x",
		},
		{
			name: "port and user kept",
			in:   "http://user@example.com:8080/p?pk_campaign=z&a=1",
			want: "http://user@example.com:8080/p?a=1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Clean(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	p := NewDefault()

	inputs := []string{
		"https://www.amazon.com/Some-Product-Name/dp/B08N5WRWNW/ref=sr_1_1?keywords=x&utm_source=google",
		"https://example.com/?fbclid=abc&keep=1#section?gclid=xyz&k=2",
		"example.com/page?utm_source=x",
		"https://example.com/search?q=a%20b&x=%2B&&flag",
		"https://app.example.com/#/route?",
		"https://www.amazon.de/s?k=x&tag=y",
		"https://example.com/p?",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once, err := p.Clean(in)
			require.NoError(t, err)
			twice, err := p.Clean(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestCleanInvalidInput(t *testing.T) {
	p := NewDefault()

	_, err := p.Clean("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = p.Clean("   ")
	assert.True(t, errors.Is(err, ErrEmptyInput))

	for _, in := range []string{"not a url", "://missing-scheme", "/relative/path", "mailto:a@example.com"} {
		_, err := p.Clean(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidInput), in)

		var perr *Error
		require.True(t, errors.As(err, &perr), in)
		assert.Equal(t, ErrCodeInvalidInput, perr.Code)
		assert.Equal(t, in, perr.Input)
		assert.True(t, errors.Is(err, &Error{Code: ErrCodeInvalidInput}))
	}
}

func TestPurifyReport(t *testing.T) {
	p := NewDefault()

	res, err := p.Purify("https://www.example.co.uk/a?utm_source=x&id=1&fbclid=y#r?gclid=z&k=2")
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.co.uk/a?id=1#r?k=2", res.Output)
	assert.Equal(t, "www.example.co.uk", res.Host)
	assert.Equal(t, "example.co.uk", res.Domain)
	assert.False(t, res.Amazon)
	assert.Equal(t, []string{"utm_source", "fbclid", "gclid"}, res.Removed)
	assert.False(t, res.Fallback)

	res, err = p.Purify("amazon.com/dp/B08N5WRWNW?th=1")
	require.NoError(t, err)
	assert.True(t, res.Amazon)
	assert.Equal(t, "B08N5WRWNW", res.ASIN)
	assert.Equal(t, "https://amazon.com/dp/B08N5WRWNW?th=1", res.Normalized)
	assert.Equal(t, "https://amazon.com/dp/B08N5WRWNW", res.Output)
	assert.Equal(t, []string{"th"}, res.Removed)
}

func TestPurifierCustomRules(t *testing.T) {
	rules := DefaultRules().Extend([]string{"session"}, nil, []string{"tag"})
	p := New(Options{Rules: rules, Logger: zerolog.Nop()})

	got, err := p.Clean("https://example.com/?session=1&tag=keep&utm_source=x")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/?tag=keep", got)
	assert.Same(t, rules, p.Rules())
}

func TestPurifierWithBrokenExtraPattern(t *testing.T) {
	patterns := append(append([]string{}, DefaultASINPatterns...), "/item/(")
	matchers, errs := CompileASINPatterns(patterns, zerolog.Nop())
	require.Len(t, errs, 1)

	p := New(Options{Matchers: matchers, Logger: zerolog.Nop()})
	got, err := p.Clean("https://www.amazon.com/dp/B08N5WRWNW")
	require.NoError(t, err)
	assert.Equal(t, "https://amazon.com/dp/B08N5WRWNW", got)
	assert.Len(t, p.Matchers(), len(DefaultASINPatterns))
}

func TestPurifierWithoutPathMatchers(t *testing.T) {
	p := New(Options{Matchers: []ASINMatcher{}, Logger: zerolog.Nop()})

	got, err := p.Clean("https://www.amazon.com/dp/B08N5WRWNW?utm_source=x")
	require.NoError(t, err)
	assert.Equal(t, "https://www.amazon.com/dp/B08N5WRWNW", got)
}

func TestPurifierNormalize(t *testing.T) {
	p := New(Options{Normalize: true, Logger: zerolog.Nop()})

	got, err := p.Clean("HTTPS://Example.COM:443/a/./b?utm_source=x&id=1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/b?id=1", got)

	got, err = p.Clean("https://WWW.Amazon.com/dp/B08N5WRWNW")
	require.NoError(t, err)
	assert.Equal(t, "https://amazon.com/dp/B08N5WRWNW", got)
}

func TestPurifyFallsBackWhenRebuildFails(t *testing.T) {
	orig := serialize
	t.Cleanup(func() { serialize = orig })
	serialize = func(*Components) (string, error) {
		return "", errors.New("rebuild failed")
	}

	p := NewDefault()
	res, err := p.Purify("example.com/page?utm_source=x&id=1")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, "https://example.com/page?utm_source=x&id=1", res.Normalized)
	assert.Equal(t, res.Normalized, res.Output)

	// Amazon product links never reach the rebuild step.
	res, err = p.Purify("https://www.amazon.com/dp/B08N5WRWNW?tag=x")
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "https://amazon.com/dp/B08N5WRWNW", res.Output)
}

func TestCleanInternationalHost(t *testing.T) {
	p := NewDefault()

	got, err := p.Clean("https://例え.jp/p?utm_source=x&a=1")
	require.NoError(t, err)
	assert.Equal(t, "https://xn--r8jz45g.jp/p?a=1", got)

	again, err := p.Clean(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}
