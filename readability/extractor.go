// Package readability extracts the main content of documentation pages
// that do not follow the generator's standard layout.
package readability

import (
	"strings"

	"github.com/fwojciec/symdex"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements symdex.MemberExtractor at compile time.
var _ symdex.MemberExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract a page's main content.
// It serves page references only; anchored members need the page markup.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of the page. A non-empty fragment
// returns ENOTFOUND.
func (e *Extractor) Extract(rawHTML string, fragment string) (*symdex.Member, error) {
	if rawHTML == "" {
		return nil, symdex.Errorf(symdex.EINVALID, "empty HTML input")
	}
	if fragment != "" {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "anchor %q not supported by page extraction", fragment)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "no main content found")
	}

	return &symdex.Member{
		Title: article.Title,
		HTML:  article.Content,
	}, nil
}

// Ensure FallbackExtractor implements symdex.MemberExtractor at compile time.
var _ symdex.MemberExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries Primary first and uses Fallback for page
// references Primary cannot locate.
type FallbackExtractor struct {
	Primary  symdex.MemberExtractor
	Fallback symdex.MemberExtractor
}

// NewFallbackExtractor returns an extractor that falls back to readability
// for page references.
func NewFallbackExtractor(primary symdex.MemberExtractor) *FallbackExtractor {
	return &FallbackExtractor{Primary: primary, Fallback: NewExtractor()}
}

// Extract returns the member from Primary, or the page from Fallback when
// Primary reports ENOTFOUND for an empty fragment.
func (e *FallbackExtractor) Extract(html string, fragment string) (*symdex.Member, error) {
	m, err := e.Primary.Extract(html, fragment)
	if fragment == "" && symdex.ErrorCode(err) == symdex.ENOTFOUND {
		return e.Fallback.Extract(html, fragment)
	}
	return m, err
}
