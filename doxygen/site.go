package doxygen

import (
	"bytes"
	"sort"
	"strings"
	"unicode"

	"github.com/fwojciec/symdex"
)

// File is one per-letter index file of a section.
type File struct {
	Name    string
	Group   rune
	Entries []*symdex.Entry
}

// SiteFile is one generated file of a search directory.
type SiteFile struct {
	Name string
	Data []byte
}

// Split groups a table's entries into per-letter files. It returns the
// section's content string and the files in content order. Entries keep
// their relative table order within a file.
func Split(t *symdex.Table) (string, []File) {
	groups := make(map[rune][]*symdex.Entry)
	var chars []rune
	for _, e := range t.Entries {
		c := symdex.GroupChar(e.Name)
		if _, ok := groups[c]; !ok {
			chars = append(chars, c)
		}
		groups[c] = append(groups[c], e)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	files := make([]File, 0, len(chars))
	for i, c := range chars {
		files = append(files, File{
			Name:    FileName(t.Section, i),
			Group:   c,
			Entries: groups[c],
		})
	}
	return string(chars), files
}

// Merge concatenates decoded per-letter files, given in content order, into
// one table for section.
func Merge(section, label string, files []*symdex.Table) *symdex.Table {
	t := &symdex.Table{Section: section, Label: label}
	for _, f := range files {
		if f == nil {
			continue
		}
		t.Entries = append(t.Entries, f.Entries...)
	}
	return t
}

// EncodeSite renders the complete search directory for tables: the
// manifest followed by every per-letter file. Output is deterministic.
func EncodeSite(tables []*symdex.Table) ([]SiteFile, error) {
	m := &Manifest{Sections: make([]ManifestSection, 0, len(tables))}
	var files []SiteFile

	for i, t := range tables {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		content, split := Split(t)
		label := t.Label
		if label == "" {
			label = SectionLabel(t.Section)
		}
		m.Sections = append(m.Sections, ManifestSection{
			Index:   i,
			Name:    t.Section,
			Label:   label,
			Content: content,
		})
		for _, f := range split {
			var buf bytes.Buffer
			if err := Encode(&buf, f.Entries); err != nil {
				return nil, err
			}
			files = append(files, SiteFile{Name: f.Name, Data: buf.Bytes()})
		}
	}

	var buf bytes.Buffer
	if err := EncodeManifest(&buf, m); err != nil {
		return nil, err
	}
	return append([]SiteFile{{Name: ManifestFile, Data: buf.Bytes()}}, files...), nil
}

// sectionLabels holds the generator's labels for the well-known sections.
var sectionLabels = map[string]string{
	symdex.SectionAll:        "All",
	symdex.SectionClasses:    "Classes",
	symdex.SectionNamespaces: "Namespaces",
	symdex.SectionFiles:      "Files",
	symdex.SectionFunctions:  "Functions",
	symdex.SectionVariables:  "Variables",
	symdex.SectionTypedefs:   "Typedefs",
	symdex.SectionEnums:      "Enumerations",
	symdex.SectionEnumValues: "Enumerator",
	symdex.SectionDefines:    "Macros",
	symdex.SectionPages:      "Pages",
}

// SectionLabel returns the display label of a section.
func SectionLabel(section string) string {
	if label, ok := sectionLabels[section]; ok {
		return label
	}
	if section == "" {
		return ""
	}
	r := []rune(section)
	r[0] = unicode.ToUpper(r[0])
	return strings.ReplaceAll(string(r), "_", " ")
}
