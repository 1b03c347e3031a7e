package doxygen

import (
	"bufio"
	"io"
	"sort"
	"strconv"

	"github.com/fwojciec/symdex"
)

// ManifestFile is the name of the file that lists an index's sections.
const ManifestFile = "searchdata.js"

// Variables declared by the manifest.
const (
	contentVar = "indexSectionsWithContent"
	namesVar   = "indexSectionNames"
	labelsVar  = "indexSectionLabels"
)

// Manifest describes the sections of a search index.
type Manifest struct {
	Sections []ManifestSection
}

// ManifestSection is one section of a search index.
type ManifestSection struct {
	Index int
	Name  string
	Label string

	// Content holds the group character of every per-letter file, in file
	// order. The file for Content's i-th character is FileName(Name, i).
	Content string
}

// Files returns the per-letter file names of the section in order.
func (s ManifestSection) Files() []string {
	files := make([]string, 0, len(s.Content))
	for i := range []rune(s.Content) {
		files = append(files, FileName(s.Name, i))
	}
	return files
}

// FileName returns the name of a section's i-th per-letter file.
func FileName(section string, i int) string {
	return section + "_" + strconv.FormatInt(int64(i), 16) + ".js"
}

// DecodeManifest parses searchdata.js.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	p, err := newParser(r)
	if err != nil {
		return nil, err
	}
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}

	names, err := stringMap(decls, namesVar, true)
	if err != nil {
		return nil, err
	}
	content, err := stringMap(decls, contentVar, true)
	if err != nil {
		return nil, err
	}
	labels, err := stringMap(decls, labelsVar, false)
	if err != nil {
		return nil, err
	}

	indexes := make([]int, 0, len(names))
	for k := range names {
		indexes = append(indexes, k)
	}
	sort.Ints(indexes)

	m := &Manifest{Sections: make([]ManifestSection, 0, len(indexes))}
	for _, i := range indexes {
		if names[i] == "" {
			return nil, symdex.Errorf(symdex.EINVALID, "section %d has an empty name", i)
		}
		m.Sections = append(m.Sections, ManifestSection{
			Index:   i,
			Name:    names[i],
			Label:   labels[i],
			Content: content[i],
		})
	}
	return m, nil
}

// stringMap converts a declared object with integer keys and string values.
func stringMap(decls map[string]any, name string, required bool) (map[int]string, error) {
	v, ok := decls[name]
	if !ok {
		if required {
			return nil, symdex.Errorf(symdex.EINVALID, "missing %s declaration", name)
		}
		return map[int]string{}, nil
	}
	obj, ok := v.(*object)
	if !ok {
		return nil, symdex.Errorf(symdex.EINVALID, "%s is not an object", name)
	}
	m := make(map[int]string, len(obj.keys))
	for _, k := range obj.keys {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, symdex.Errorf(symdex.EINVALID, "%s: key %q is not an integer", name, k)
		}
		s, ok := obj.values[k].(string)
		if !ok {
			return nil, symdex.Errorf(symdex.EINVALID, "%s: value for %d is not a string", name, i)
		}
		m[i] = s
	}
	return m, nil
}

// EncodeManifest writes searchdata.js.
func EncodeManifest(w io.Writer, m *Manifest) error {
	bw := bufio.NewWriter(w)
	writeObject := func(name string, value func(ManifestSection) string) {
		bw.WriteString("var ")
		bw.WriteString(name)
		bw.WriteString(" =\n{\n")
		for i, s := range m.Sections {
			bw.WriteString("  ")
			bw.WriteString(strconv.Itoa(s.Index))
			bw.WriteString(": ")
			bw.WriteString(strconv.Quote(value(s)))
			if i < len(m.Sections)-1 {
				bw.WriteByte(',')
			}
			bw.WriteByte('\n')
		}
		bw.WriteString("};\n\n")
	}
	writeObject(contentVar, func(s ManifestSection) string { return s.Content })
	writeObject(namesVar, func(s ManifestSection) string { return s.Name })
	writeObject(labelsVar, func(s ManifestSection) string { return s.Label })
	return bw.Flush()
}
