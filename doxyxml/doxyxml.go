// Package doxyxml builds search tables from Doxygen's XML output.
//
// Doxygen writes xml/index.xml next to its HTML output. The index lists
// every compound (class, namespace, file, page, ...) with its members,
// which is enough to derive the same tables the HTML generator writes
// into search/*.js.
package doxyxml

import (
	"context"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/doxygen"
)

// IndexFile is the name of Doxygen's XML index.
const IndexFile = "index.xml"

// sectionOrder is the order tables are emitted in.
var sectionOrder = []string{
	symdex.SectionAll,
	symdex.SectionClasses,
	symdex.SectionNamespaces,
	symdex.SectionFiles,
	symdex.SectionFunctions,
	symdex.SectionVariables,
	symdex.SectionTypedefs,
	symdex.SectionEnums,
	symdex.SectionEnumValues,
	symdex.SectionDefines,
	symdex.SectionPages,
}

// compoundSections maps compound kinds to their section.
var compoundSections = map[string]string{
	"class":     symdex.SectionClasses,
	"struct":    symdex.SectionClasses,
	"union":     symdex.SectionClasses,
	"interface": symdex.SectionClasses,
	"protocol":  symdex.SectionClasses,
	"exception": symdex.SectionClasses,
	"namespace": symdex.SectionNamespaces,
	"file":      symdex.SectionFiles,
	"page":      symdex.SectionPages,
	"example":   symdex.SectionPages,
}

// memberSections maps member kinds to their section.
var memberSections = map[string]string{
	"function":  symdex.SectionFunctions,
	"slot":      symdex.SectionFunctions,
	"signal":    symdex.SectionFunctions,
	"prototype": symdex.SectionFunctions,
	"variable":  symdex.SectionVariables,
	"property":  symdex.SectionVariables,
	"typedef":   symdex.SectionTypedefs,
	"enum":      symdex.SectionEnums,
	"enumvalue": symdex.SectionEnumValues,
	"define":    symdex.SectionDefines,
}

// Ensure Source implements symdex.Source at compile time.
var _ symdex.Source = (*Source)(nil)

// Source loads catalogs from the XML output directory of a site.
type Source struct {
	Fetcher symdex.Fetcher
}

// NewSource returns a Source that reads index.xml through fetcher.
func NewSource(fetcher symdex.Fetcher) *Source {
	return &Source{Fetcher: fetcher}
}

// Load fetches and decodes the index.xml found at base, which is the XML
// output directory (local or remote) or the index file itself.
func (s *Source) Load(ctx context.Context, base string) (*symdex.Catalog, error) {
	location, err := IndexURL(base)
	if err != nil {
		return nil, err
	}
	data, err := s.Fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	return Decode(strings.NewReader(data))
}

// IndexURL returns the location of index.xml for base.
func IndexURL(base string) (string, error) {
	if base == "" {
		return "", symdex.Errorf(symdex.EINVALID, "source required")
	}
	u, err := url.Parse(base)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if path.Base(u.Path) != IndexFile {
			u.Path = path.Join("/", u.Path, IndexFile)
		}
		return u.String(), nil
	}
	if filepath.Base(base) == IndexFile {
		return base, nil
	}
	return filepath.Join(base, IndexFile), nil
}

// builder accumulates the entries of one section.
type builder struct {
	entries map[string]*symdex.Entry
	seen    map[string]bool
}

func newBuilder() *builder {
	return &builder{
		entries: make(map[string]*symdex.Entry),
		seen:    make(map[string]bool),
	}
}

// add records a reference for name unless the same target is already
// listed under it.
func (b *builder) add(name string, ref *symdex.Reference) {
	key := name + "\x00" + ref.URL
	if b.seen[key] {
		return
	}
	b.seen[key] = true

	e, ok := b.entries[name]
	if !ok {
		e = &symdex.Entry{Name: name}
		b.entries[name] = e
	}
	e.References = append(e.References, ref)
}

// table returns the entries sorted by search key, then name.
func (b *builder) table(section string) *symdex.Table {
	t := &symdex.Table{
		Section: section,
		Label:   doxygen.SectionLabel(section),
		Entries: make([]*symdex.Entry, 0, len(b.entries)),
	}
	for _, e := range b.entries {
		t.Entries = append(t.Entries, e)
	}
	sort.Slice(t.Entries, func(i, j int) bool {
		a, b := t.Entries[i], t.Entries[j]
		if a.Key() != b.Key() {
			return a.Key() < b.Key()
		}
		return a.Name < b.Name
	})
	for i, e := range t.Entries {
		e.ID = doxygen.EntryID(e.Name, i)
	}
	return t
}

// Decode parses index.xml into a catalog. Sections without entries are
// omitted.
func Decode(r io.Reader) (*symdex.Catalog, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, symdex.Errorf(symdex.EINVALID, "parsing index XML: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "doxygenindex" {
		return nil, symdex.Errorf(symdex.EINVALID, "not a Doxygen index: missing doxygenindex element")
	}

	builders := make(map[string]*builder)
	add := func(section, name string, ref *symdex.Reference) {
		for _, s := range []string{section, symdex.SectionAll} {
			if s == symdex.SectionAll && section == symdex.SectionPages {
				continue
			}
			b, ok := builders[s]
			if !ok {
				b = newBuilder()
				builders[s] = b
			}
			b.add(name, ref)
		}
	}

	for _, compound := range root.SelectElements("compound") {
		kind := compound.SelectAttrValue("kind", "")
		refid := compound.SelectAttrValue("refid", "")
		name := elementText(compound, "name")
		if refid == "" || name == "" {
			continue
		}

		if section, ok := compoundSections[kind]; ok {
			token, scope := splitQualified(name)
			add(section, token, symdex.NewReference(token, "../"+refid+".html", true, scope))
		}

		for _, member := range compound.SelectElements("member") {
			section, ok := memberSections[member.SelectAttrValue("kind", "")]
			if !ok {
				continue
			}
			memberName := elementText(member, "name")
			ref := memberReference(kind, name, memberName, member)
			if ref == nil {
				continue
			}
			add(section, memberName, ref)
		}
	}

	var tables []*symdex.Table
	for _, section := range sectionOrder {
		if b, ok := builders[section]; ok {
			tables = append(tables, b.table(section))
		}
	}

	catalog := symdex.NewCatalog(tables...)
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// memberReference builds the reference of a member listed in a compound.
// Member refids are "<page refid>_1<anchor>".
func memberReference(compoundKind, compoundName, name string, member *etree.Element) *symdex.Reference {
	refid := member.SelectAttrValue("refid", "")
	i := strings.LastIndex(refid, "_1")
	if name == "" || i <= 0 || i+2 >= len(refid) {
		return nil
	}
	u := "../" + refid[:i] + ".html#" + refid[i+2:]

	scope := compoundName
	if compoundKind == "file" {
		label := name
		if member.SelectAttrValue("kind", "") == "function" {
			label += "()"
		}
		scope = label + ":\u00a0" + compoundName
	}
	return symdex.NewReference(name, u, true, scope)
}

// splitQualified splits "a::b::C" into ("C", "a::b").
func splitQualified(name string) (token, scope string) {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:], name[:i]
	}
	return name, ""
}

func elementText(e *etree.Element, tag string) string {
	child := e.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
