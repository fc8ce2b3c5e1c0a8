package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	urlutil "github.com/law-makers/purify/internal/utils/url"
	"github.com/law-makers/purify/pkg/models"
)

// linkSelector matches the elements whose href is rewritten
const linkSelector = "a[href], area[href]"

// RewriteLinks runs every absolute http(s) link of an HTML document through clean
// and returns the re-rendered document with the list of changed links.
// Relative, mailto: and fragment-only links are left alone, as are links clean rejects.
func RewriteLinks(r io.Reader, clean func(string) (string, error)) (string, []models.LinkRewrite, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("parse HTML: %w", err)
	}

	var rewrites []models.LinkRewrite
	doc.Find(linkSelector).Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !urlutil.IsWebURL(href) {
			return
		}

		cleaned, err := clean(strings.TrimSpace(href))
		if err != nil {
			log.Debug().Err(err).Str("href", href).Msg("Skipping link")
			return
		}
		if cleaned == href {
			return
		}

		s.SetAttr("href", cleaned)
		rewrites = append(rewrites, models.LinkRewrite{From: href, To: cleaned})
	})

	html, err := doc.Html()
	if err != nil {
		return "", nil, fmt.Errorf("render HTML: %w", err)
	}
	return html, rewrites, nil
}
