package symdex

import (
	"strings"
	"unicode"
)

// scopeSeparator separates a display label from its owning document in a
// reference scope ("t():&#160;test_bugs.cc" once entities are decoded).
const scopeSeparator = ":\u00a0"

// Entry is one searchable token and every place it is documented.
type Entry struct {
	// ID is the generator's search id (e.g. "t_0"). It is informational;
	// encoders recompute it from Name and the entry's position.
	ID         string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string       `json:"name" yaml:"name"`
	References []*Reference `json:"references" yaml:"references"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Name == "" {
		return Errorf(EINVALID, "entry name required")
	}
	if len(e.References) == 0 {
		return Errorf(EINVALID, "entry %q has no references", e.Name)
	}
	for _, ref := range e.References {
		if err := ref.Validate(); err != nil {
			return Errorf(EINVALID, "entry %q: %s", e.Name, ErrorMessage(err))
		}
	}
	return nil
}

// Key returns the case-insensitive key the entry is matched on.
func (e *Entry) Key() string {
	return SearchKey(e.Name)
}

// Reference is one recorded occurrence of a token.
type Reference struct {
	// URL is the document-relative link, including the "#fragment" for
	// member references (e.g. "../test__bugs_8cc.html#abbf27...").
	URL string `json:"url" yaml:"url"`

	// Local is false for references into external tag files.
	Local bool `json:"local" yaml:"local"`

	// Scope is the generator's scope string with entities decoded.
	Scope string `json:"scope" yaml:"scope"`

	Label    string `json:"label" yaml:"label"`
	Document string `json:"document" yaml:"document"`
}

// NewReference returns a reference for the token name with Label and
// Document derived from scope.
func NewReference(name, url string, local bool, scope string) *Reference {
	label, document := ParseScope(name, scope)
	return &Reference{
		URL:      url,
		Local:    local,
		Scope:    scope,
		Label:    label,
		Document: document,
	}
}

// ParseScope splits a scope into its display label and owning document.
// "t():&#160;test_bugs.cc" (decoded) yields ("t()", "test_bugs.cc"); a qualifying
// scope such as "symmetri::Application" yields (name, scope).
func ParseScope(name, scope string) (label, document string) {
	if i := strings.LastIndex(scope, scopeSeparator); i >= 0 {
		return scope[:i], scope[i+len(scopeSeparator):]
	}
	return name, scope
}

// Path returns the URL without its fragment.
func (r *Reference) Path() string {
	path, _, _ := strings.Cut(r.URL, "#")
	return path
}

// Fragment returns the anchor fragment, or "" for page references.
func (r *Reference) Fragment() string {
	_, fragment, _ := strings.Cut(r.URL, "#")
	return fragment
}

// Validate returns an error if the reference contains invalid fields.
func (r *Reference) Validate() error {
	path, fragment, anchored := strings.Cut(r.URL, "#")
	if path == "" {
		return Errorf(EINVALID, "reference path required")
	}
	if anchored && fragment == "" {
		return Errorf(EINVALID, "reference %q has an empty fragment", r.URL)
	}
	if strings.IndexFunc(fragment, unicode.IsSpace) >= 0 {
		return Errorf(EINVALID, "reference fragment %q contains whitespace", fragment)
	}
	return nil
}
