package mock

import (
	"context"

	"github.com/fwojciec/symdex"
)

var _ symdex.GeneratorDetector = (*GeneratorDetector)(nil)

// GeneratorDetector is a mock implementation of symdex.GeneratorDetector.
type GeneratorDetector struct {
	DetectFn func(html string) symdex.Generator
}

func (d *GeneratorDetector) Detect(html string) symdex.Generator {
	return d.DetectFn(html)
}

var _ symdex.MemberExtractor = (*MemberExtractor)(nil)

// MemberExtractor is a mock implementation of symdex.MemberExtractor.
type MemberExtractor struct {
	ExtractFn func(html string, fragment string) (*symdex.Member, error)
}

func (e *MemberExtractor) Extract(html string, fragment string) (*symdex.Member, error) {
	return e.ExtractFn(html, fragment)
}

var _ symdex.Converter = (*Converter)(nil)

// Converter is a mock implementation of symdex.Converter. It turns member
// HTML into the Markdown written by show.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ symdex.MemberWriter = (*MemberWriter)(nil)

// MemberWriter is a mock implementation of symdex.MemberWriter.
type MemberWriter struct {
	WriteMemberFn func(ctx context.Context, page *symdex.MemberPage) error
}

func (w *MemberWriter) WriteMember(ctx context.Context, page *symdex.MemberPage) error {
	return w.WriteMemberFn(ctx, page)
}
