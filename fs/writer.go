package fs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/symdex"
	"gopkg.in/yaml.v3"
)

// MemberPath converts a reference URL to a relative Markdown file path.
// Example: ../classSymmetri_1_1Net.html#a1b2 → classSymmetri_1_1Net/a1b2.md
func MemberPath(refURL string) (string, error) {
	p, fragment, _ := strings.Cut(refURL, "#")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}

	// Reference paths are relative to the search directory.
	p = strings.TrimLeft(path.Clean("/"+strings.TrimPrefix(p, "../")), "/")
	if p == "" || p == "." || p == ".." {
		return "", symdex.Errorf(symdex.EINVALID, "reference %q has no page", refURL)
	}
	p = strings.TrimSuffix(p, path.Ext(p))

	if fragment == "" {
		return p + ".md", nil
	}
	if strings.ContainsAny(fragment, `/\`) || fragment == ".." {
		return "", symdex.Errorf(symdex.EINVALID, "invalid fragment %q: path traversal", fragment)
	}
	return p + "/" + fragment + ".md", nil
}

// frontmatter is the YAML header of a member file.
type frontmatter struct {
	Token     string `yaml:"token"`
	Source    string `yaml:"source"`
	Title     string `yaml:"title,omitempty"`
	Document  string `yaml:"document,omitempty"`
	Generator string `yaml:"generator,omitempty"`
}

// FormatMember formats member documentation with YAML frontmatter.
func FormatMember(page *symdex.MemberPage) (string, error) {
	fm := frontmatter{
		Token:    page.Token,
		Source:   page.URL,
		Title:    page.Title,
		Document: page.Document,
	}
	if page.Generator.Name != "" {
		fm.Generator = strings.TrimSpace(page.Generator.Name + " " + page.Generator.Version)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	return b.String(), nil
}

// Ensure Writer implements symdex.MemberWriter at compile time.
var _ symdex.MemberWriter = (*Writer)(nil)

// Writer writes member documentation as Markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteMember writes a member page to disk as a Markdown file.
func (w *Writer) WriteMember(ctx context.Context, page *symdex.MemberPage) error {
	if err := page.Validate(); err != nil {
		return err
	}

	relPath, err := MemberPath(page.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatMember(page)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
