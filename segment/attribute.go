package segment

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrLengthMismatch is returned when an Attribute's declared length differs
	// from the size of its payload.
	ErrLengthMismatch = errors.New("attribute length mismatch")

	// ErrEmptyName is returned for an Attribute without a field name.
	ErrEmptyName = errors.New("attribute has no field name")

	// ErrInvalidName is returned for a field name that cannot be a file name
	// inside the segment directory.
	ErrInvalidName = errors.New("invalid attribute field name")
)

// Attribute is one named column: its raw payload, the payload's declared
// length in bytes, and the row identifiers of the segment it belongs to.
type Attribute struct {
	Name   string
	Data   []byte
	Nbytes uint64
	RowIDs RowIDs
}

// NewAttribute creates an Attribute whose declared length is len(data).
func NewAttribute(name string, data []byte, rowIDs RowIDs) *Attribute {
	return &Attribute{
		Name:   name,
		Data:   data,
		Nbytes: uint64(len(data)),
		RowIDs: rowIDs,
	}
}

// Validate checks that the Attribute can be encoded.
func (a *Attribute) Validate() error {
	if err := ValidateName(a.Name); err != nil {
		return err
	}
	if a.Nbytes != uint64(len(a.Data)) {
		return fmt.Errorf("%w: field %q declares %d bytes, payload has %d", ErrLengthMismatch, a.Name, a.Nbytes, len(a.Data))
	}
	return nil
}

// ValidateName checks that name maps to a single file inside the segment
// directory: not empty, no path separators or NUL bytes, and not "." or "..".
func ValidateName(name string) error {
	switch {
	case name == "":
		return ErrEmptyName
	case name == "." || name == "..", strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// AttributeSet maps field names to attributes.
// It is not safe for concurrent mutation.
type AttributeSet struct {
	attrs map[string]*Attribute
}

// NewAttributeSet creates an AttributeSet holding attrs.
// Later attributes replace earlier ones with the same name.
func NewAttributeSet(attrs ...*Attribute) *AttributeSet {
	s := &AttributeSet{attrs: make(map[string]*Attribute, len(attrs))}
	for _, a := range attrs {
		s.Put(a)
	}
	return s
}

// Put inserts a, replacing any attribute with the same name.
func (s *AttributeSet) Put(a *Attribute) {
	if s.attrs == nil {
		s.attrs = make(map[string]*Attribute)
	}
	s.attrs[a.Name] = a
}

// Get returns the attribute named name.
func (s *AttributeSet) Get(name string) (*Attribute, bool) {
	if s == nil {
		return nil, false
	}
	a, ok := s.attrs[name]
	return a, ok
}

// Len returns the number of attributes. A nil set is empty.
func (s *AttributeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.attrs)
}

// Names returns the field names in ascending order.
func (s *AttributeSet) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.attrs))
}

// All iterates over the attributes in ascending name order.
func (s *AttributeSet) All() iter.Seq2[string, *Attribute] {
	return func(yield func(string, *Attribute) bool) {
		for _, name := range s.Names() {
			if !yield(name, s.attrs[name]) {
				return
			}
		}
	}
}
