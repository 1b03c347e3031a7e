package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/symdex"
)

// Ensure MemberExtractor implements symdex.MemberExtractor at compile time.
var _ symdex.MemberExtractor = (*MemberExtractor)(nil)

// MemberExtractor locates member documentation in Doxygen HTML pages.
//
// A member is introduced by an anchor whose id or name is the fragment,
// followed by an h2.memtitle heading and a div.memitem block. Enumerator
// anchors sit inside a table row instead; the row is returned. An empty
// fragment selects the page itself.
type MemberExtractor struct{}

// NewMemberExtractor creates a new MemberExtractor.
func NewMemberExtractor() *MemberExtractor {
	return &MemberExtractor{}
}

// Extract returns the documentation anchored at fragment.
func (e *MemberExtractor) Extract(html string, fragment string) (*symdex.Member, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, symdex.Errorf(symdex.EINVALID, "failed to parse HTML: %v", err)
	}

	if fragment == "" {
		return e.extractPage(doc)
	}

	anchor := doc.Find("a[id], a[name]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == fragment || s.AttrOr("name", "") == fragment
	}).First()
	if anchor.Length() == 0 {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "anchor %q not found", fragment)
	}

	if item := anchor.NextAllFiltered("div.memitem").First(); item.Length() > 0 {
		html, err := goquery.OuterHtml(item)
		if err != nil {
			return nil, err
		}
		return &symdex.Member{
			Fragment: fragment,
			Title:    headingText(anchor.NextAllFiltered("h2.memtitle").First()),
			HTML:     html,
		}, nil
	}

	if row := anchor.Closest("tr"); row.Length() > 0 {
		html, err := goquery.OuterHtml(row)
		if err != nil {
			return nil, err
		}
		return &symdex.Member{
			Fragment: fragment,
			Title:    collapseSpace(row.Find("td.fieldname").First().Text()),
			HTML:     html,
		}, nil
	}

	return nil, symdex.Errorf(symdex.ENOTFOUND, "anchor %q has no documentation", fragment)
}

// extractPage returns the title and contents of a compound or file page.
func (e *MemberExtractor) extractPage(doc *goquery.Document) (*symdex.Member, error) {
	contents := doc.Find("div.contents").First()
	if contents.Length() == 0 {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "page has no contents")
	}
	html, err := goquery.OuterHtml(contents)
	if err != nil {
		return nil, err
	}

	title := collapseSpace(doc.Find("div.headertitle .title").First().Text())
	if title == "" {
		title = collapseSpace(doc.Find("title").First().Text())
	}
	return &symdex.Member{Title: title, HTML: html}, nil
}

// headingText returns a memtitle's text without its permalink marker.
func headingText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	clone := s.Clone()
	clone.Find(".permalink").Remove()
	return collapseSpace(clone.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
