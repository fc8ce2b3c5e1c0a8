package purifier

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMatchers(t *testing.T) []ASINMatcher {
	t.Helper()
	m, errs := CompileASINPatterns(DefaultASINPatterns, zerolog.Nop())
	require.Empty(t, errs)
	require.Len(t, m, len(DefaultASINPatterns))
	return m
}

func TestIsAmazonHost(t *testing.T) {
	assert.True(t, IsAmazonHost("www.amazon.com"))
	assert.True(t, IsAmazonHost("AMAZON.co.jp"))
	assert.True(t, IsAmazonHost("smile.amazon.de"))
	assert.False(t, IsAmazonHost("s3.amazonaws.com"))
	assert.False(t, IsAmazonHost("bucket.s3.us-east-1.AMAZONAWS.COM"))
	assert.False(t, IsAmazonHost("example.com"))
	assert.False(t, IsAmazonHost("amazoncom.example"))
}

func TestCanonicalAmazonHost(t *testing.T) {
	assert.Equal(t, "amazon.com", CanonicalAmazonHost("www.amazon.com"))
	assert.Equal(t, "amazon.co.jp", CanonicalAmazonHost("M.Amazon.co.jp"))
	assert.Equal(t, "amazon.de", CanonicalAmazonHost("smile.amazon.de"))
	// Only the first matching prefix is removed.
	assert.Equal(t, "m.amazon.com", CanonicalAmazonHost("www.m.amazon.com"))
	assert.Equal(t, "amazon.com", CanonicalAmazonHost("amazon.com"))
}

func TestExtractASIN(t *testing.T) {
	m := defaultMatchers(t)

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.amazon.com/Some-Product/dp/B08N5WRWNW/ref=sr_1_1", "B08N5WRWNW"},
		{"https://www.amazon.com/gp/product/0316769487?pf=1", "0316769487"},
		{"https://www.amazon.com/gp/aw/d/b07xj8c8f5", "B07XJ8C8F5"},
		{"https://www.amazon.com/product/B000000001/x", "B000000001"},
		{"https://www.amazon.com/exec/obidos/ASIN/B00005N5PF/", "B00005N5PF"},
		{"https://www.amazon.com/o/asin/B00005N5PF", "B00005N5PF"},
		{"https://www.amazon.com/s?k=phone&asin=b0abcdefgh", "B0ABCDEFGH"},
		{"https://www.amazon.com/s?ASIN=B0ABCDEFGH", "B0ABCDEFGH"},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			c, err := ParseComponents(tc.url)
			require.NoError(t, err)
			got, ok := ExtractASIN(c, m)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractASINPathWinsOverQuery(t *testing.T) {
	c, err := ParseComponents("https://amazon.com/dp/B000000001?asin=B000000002")
	require.NoError(t, err)
	got, ok := ExtractASIN(c, defaultMatchers(t))
	require.True(t, ok)
	assert.Equal(t, "B000000001", got)
}

func TestExtractASINMissing(t *testing.T) {
	m := defaultMatchers(t)
	for _, s := range []string{
		"https://www.amazon.com/",
		"https://www.amazon.com/dp/SHORT",
		"https://www.amazon.com/s?asin=",
		"https://www.amazon.com/s?asin",
	} {
		c, err := ParseComponents(s)
		require.NoError(t, err)
		_, ok := ExtractASIN(c, m)
		assert.False(t, ok, s)
	}
}

func TestCompileASINPatternsSkipsBroken(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	patterns := []string{"/dp/([A-Z0-9]{10}", "/item/[0-9]+", "/dp/([A-Z0-9]{10})"}
	m, errs := CompileASINPatterns(patterns, logger)

	require.Len(t, m, 1)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], ErrPatternCompile))
	assert.True(t, errors.Is(errs[1], ErrPatternCompile))

	var perr *PatternError
	require.True(t, errors.As(errs[0], &perr))
	assert.Equal(t, "/dp/([A-Z0-9]{10}", perr.Pattern)

	assert.Contains(t, buf.String(), `"level":"warn"`)

	asin, ok := m[0].MatchASIN("/x/dp/b08n5wrwnw")
	require.True(t, ok)
	assert.Equal(t, "b08n5wrwnw", asin)
}

func TestCanonicalAmazonURL(t *testing.T) {
	c, err := ParseComponents("https://smile.amazon.co.uk:443/Thing/dp/B08N5WRWNW?tag=x&th=1#reviews")
	require.NoError(t, err)

	out, asin, ok := CanonicalAmazonURL(c, defaultMatchers(t))
	require.True(t, ok)
	assert.Equal(t, "B08N5WRWNW", asin)
	assert.Equal(t, "https://amazon.co.uk/dp/B08N5WRWNW", out)
}
