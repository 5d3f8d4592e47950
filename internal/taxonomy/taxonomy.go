// Package taxonomy describes the set of defect classes a segmentation model
// can emit. The taxonomy is loaded once at startup and shared read-only.
package taxonomy

import (
	"errors"
	"fmt"
)

// BackgroundID is the class id reserved for non-defect pixels.
const BackgroundID uint8 = 0

// Class is one entry of the defect taxonomy.
type Class struct {
	ID   uint8  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Taxonomy is an immutable, ordered mapping of class ids to names.
// Exactly one class, id 0, is the background.
type Taxonomy struct {
	classes []Class
	byID    map[uint8]string
	byName  map[string]uint8
}

// ErrNoBackground is returned when the class list has no background entry.
var ErrNoBackground = errors.New("taxonomy: missing background class (id 0)")

// New builds a taxonomy from an ordered class list. The list must contain
// the background class (id 0) and no duplicate ids or names.
func New(classes []Class) (*Taxonomy, error) {
	if len(classes) == 0 {
		return nil, ErrNoBackground
	}

	t := &Taxonomy{
		classes: make([]Class, len(classes)),
		byID:    make(map[uint8]string, len(classes)),
		byName:  make(map[string]uint8, len(classes)),
	}
	copy(t.classes, classes)

	for _, c := range classes {
		if c.Name == "" {
			return nil, fmt.Errorf("taxonomy: class %d has empty name", c.ID)
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate class id %d", c.ID)
		}
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate class name %q", c.Name)
		}
		t.byID[c.ID] = c.Name
		t.byName[c.Name] = c.ID
	}

	if _, ok := t.byID[BackgroundID]; !ok {
		return nil, ErrNoBackground
	}

	return t, nil
}

// Default returns the standard product-surface taxonomy.
func Default() *Taxonomy {
	t, err := New([]Class{
		{ID: 0, Name: "background"},
		{ID: 1, Name: "damaged"},
		{ID: 2, Name: "missing_component"},
		{ID: 3, Name: "open"},
		{ID: 4, Name: "scratch"},
		{ID: 5, Name: "stained"},
	})
	if err != nil {
		panic(err) // static class list, cannot fail
	}
	return t
}

// Classes returns the ordered class list.
func (t *Taxonomy) Classes() []Class {
	out := make([]Class, len(t.classes))
	copy(out, t.classes)
	return out
}

// Name returns the name for a class id.
func (t *Taxonomy) Name(id uint8) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}

// ID returns the class id for a name.
func (t *Taxonomy) ID(name string) (uint8, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Has reports whether the taxonomy contains a class with the given name.
func (t *Taxonomy) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// IsBackground reports whether id is the background class.
func (t *Taxonomy) IsBackground(id uint8) bool {
	return id == BackgroundID
}

// Len returns the number of classes, background included.
func (t *Taxonomy) Len() int {
	return len(t.classes)
}
