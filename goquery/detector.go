// Package goquery implements the HTML-facing services with goquery:
// generator detection and extraction of member documentation from
// generated reference pages.
package goquery

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/symdex"
)

// Doxygen is the generator name reported for Doxygen output.
const Doxygen = "Doxygen"

// Ensure Detector implements symdex.GeneratorDetector at compile time.
var _ symdex.GeneratorDetector = (*Detector)(nil)

// generatedByComment matches the banner Doxygen writes into every page.
var generatedByComment = regexp.MustCompile(`<!--\s*Generated by Doxygen\s+([0-9][0-9A-Za-z.\-]*)\s*-->`)

// Detector identifies documentation generators from HTML content.
// It checks the meta generator tag, Doxygen's banner comment, and the
// structural markers Doxygen pages carry.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified generator.
// Returns the zero Generator if it cannot be determined.
func (d *Detector) Detect(html string) symdex.Generator {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return symdex.Generator{}
	}

	// Check meta generator tags first - most reliable when present
	if g := d.detectFromMetaGenerator(doc); g.Name != "" {
		return g
	}

	if m := generatedByComment.FindStringSubmatch(html); m != nil {
		return symdex.Generator{Name: Doxygen, Version: m[1]}
	}

	// Doxygen output without a banner still carries its layout markers
	if d.hasSelector(doc, "#doc-content") && (d.hasSelector(doc, ".memitem") || d.hasSelector(doc, ".headertitle")) {
		return symdex.Generator{Name: Doxygen}
	}

	return symdex.Generator{}
}

// detectFromMetaGenerator parses <meta name="generator" content="Name 1.2.3">.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) symdex.Generator {
	content := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if c, exists := s.Attr("content"); exists {
			content = strings.TrimSpace(c)
		}
	})
	return ParseGenerator(content)
}

// ParseGenerator splits a generator string such as "Doxygen 1.9.8" into its
// name and version. A trailing word is a version when it starts with a digit.
func ParseGenerator(s string) symdex.Generator {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return symdex.Generator{}
	}

	var g symdex.Generator
	version := strings.TrimPrefix(fields[len(fields)-1], "v")
	if len(fields) > 1 && version != "" && unicode.IsDigit(rune(version[0])) {
		g.Version = version
		fields = fields[:len(fields)-1]
	}
	g.Name = strings.Join(fields, " ")
	if strings.EqualFold(g.Name, Doxygen) {
		g.Name = Doxygen
	}
	return g
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
