package doxygen

import (
	"io"

	"github.com/fwojciec/symdex"
	"golang.org/x/net/html"
)

// searchDataVar is the variable every per-letter index file declares.
const searchDataVar = "searchData"

// Decode parses one per-letter index file ("var searchData=[...];").
// The returned table has no section; callers set it or use Merge.
func Decode(r io.Reader) (*symdex.Table, error) {
	p, err := newParser(r)
	if err != nil {
		return nil, err
	}
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}

	v, ok := decls[searchDataVar]
	if !ok {
		return nil, symdex.Errorf(symdex.EINVALID, "missing %s declaration", searchDataVar)
	}
	elems, ok := v.([]any)
	if !ok {
		return nil, symdex.Errorf(symdex.EINVALID, "%s is not an array", searchDataVar)
	}

	table := &symdex.Table{Entries: make([]*symdex.Entry, 0, len(elems))}
	for i, elem := range elems {
		entry, err := decodeEntry(elem)
		if err != nil {
			return nil, symdex.Errorf(symdex.EINVALID, "entry %d: %s", i, symdex.ErrorMessage(err))
		}
		table.Entries = append(table.Entries, entry)
	}
	return table, nil
}

// decodeEntry converts ['id',['name',[url,local,scope],...]].
func decodeEntry(v any) (*symdex.Entry, error) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return nil, symdex.Errorf(symdex.EINVALID, "expected [id, [name, references...]]")
	}
	id, ok := pair[0].(string)
	if !ok {
		return nil, symdex.Errorf(symdex.EINVALID, "entry id is not a string")
	}
	body, ok := pair[1].([]any)
	if !ok || len(body) < 2 {
		return nil, symdex.Errorf(symdex.EINVALID, "entry %q has no references", id)
	}
	name, ok := body[0].(string)
	if !ok {
		return nil, symdex.Errorf(symdex.EINVALID, "entry %q name is not a string", id)
	}
	name = html.UnescapeString(name)

	entry := &symdex.Entry{ID: id, Name: name, References: make([]*symdex.Reference, 0, len(body)-1)}
	for _, rv := range body[1:] {
		ref, err := decodeReference(name, rv)
		if err != nil {
			return nil, symdex.Errorf(symdex.EINVALID, "entry %q: %s", id, symdex.ErrorMessage(err))
		}
		entry.References = append(entry.References, ref)
	}
	return entry, nil
}

// decodeReference converts [url, local] or [url, local, scope].
func decodeReference(name string, v any) (*symdex.Reference, error) {
	fields, ok := v.([]any)
	if !ok || len(fields) < 2 || len(fields) > 3 {
		return nil, symdex.Errorf(symdex.EINVALID, "expected [url, local, scope]")
	}
	url, ok := fields[0].(string)
	if !ok {
		return nil, symdex.Errorf(symdex.EINVALID, "reference url is not a string")
	}
	local, ok := fields[1].(int)
	if !ok {
		return nil, symdex.Errorf(symdex.EINVALID, "reference flag is not an integer")
	}
	var scope string
	if len(fields) == 3 {
		s, ok := fields[2].(string)
		if !ok {
			return nil, symdex.Errorf(symdex.EINVALID, "reference scope is not a string")
		}
		scope = html.UnescapeString(s)
	}
	return symdex.NewReference(name, url, local != 0, scope), nil
}
