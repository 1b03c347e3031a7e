package symdex

import "context"

// Generator identifies the tool that produced a documentation page.
type Generator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// GeneratorDetector identifies documentation generators from HTML.
type GeneratorDetector interface {
	// Detect returns the generator named by the page, or the zero value
	// if it cannot be determined.
	Detect(html string) Generator
}

// Member is the documentation block a reference points at.
type Member struct {
	Fragment string `json:"fragment"`
	Title    string `json:"title"`
	HTML     string `json:"html"`
}

// MemberExtractor locates a member's documentation within a page.
type MemberExtractor interface {
	// Extract returns the member anchored at fragment.
	// Returns ENOTFOUND if the page has no such anchor.
	Extract(html string, fragment string) (*Member, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// MemberPage is a member's documentation rendered as Markdown.
type MemberPage struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Document  string    `json:"document,omitempty"`
	Generator Generator `json:"generator"`
	Content   string    `json:"content"`
}

// Validate returns an error if the page contains invalid fields.
func (p *MemberPage) Validate() error {
	if p.Token == "" {
		return Errorf(EINVALID, "member token required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "member URL required")
	}
	return nil
}

// MemberWriter persists rendered member documentation.
type MemberWriter interface {
	WriteMember(ctx context.Context, page *MemberPage) error
}
