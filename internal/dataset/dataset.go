// Package dataset holds the immutable reference dataset of canonical
// pictographs per letter, and the ways of loading it.
package dataset

import (
	"fmt"

	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Dataset maps each letter to its canonical example pictographs.
// A Dataset is immutable once built: constructors and accessors copy.
type Dataset struct {
	letters  []core.Letter
	examples map[core.Letter][]core.Pictograph
	size     int
}

// New builds a dataset from a letter map. Examples keep their slice order and
// letters are ordered canonically.
func New(m map[core.Letter][]core.Pictograph) *Dataset {
	b := NewBuilder()
	letters := make([]core.Letter, 0, len(m))
	for l := range m {
		letters = append(letters, l)
	}
	core.SortLetters(letters)
	for _, l := range letters {
		b.Add(l, m[l]...)
	}
	return b.Build()
}

// Builder accumulates examples in insertion order before freezing them into a Dataset.
type Builder struct {
	examples map[core.Letter][]core.Pictograph
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{examples: make(map[core.Letter][]core.Pictograph)}
}

// Add appends examples for a letter. Each example's Letter field is set to l.
func (b *Builder) Add(l core.Letter, examples ...core.Pictograph) *Builder {
	if _, ok := b.examples[l]; !ok {
		b.examples[l] = nil
	}
	for _, ex := range examples {
		b.examples[l] = append(b.examples[l], ex.Clone().WithLetter(l))
	}
	return b
}

// Build freezes the accumulated examples.
func (b *Builder) Build() *Dataset {
	ds := &Dataset{
		examples: make(map[core.Letter][]core.Pictograph, len(b.examples)),
	}
	for l, exs := range b.examples {
		if len(exs) == 0 {
			continue
		}
		ds.letters = append(ds.letters, l)
		ds.examples[l] = append([]core.Pictograph(nil), exs...)
		ds.size += len(exs)
	}
	core.SortLetters(ds.letters)
	return ds
}

// Empty reports whether the dataset holds no examples. A nil dataset is empty.
func (d *Dataset) Empty() bool {
	return d == nil || d.size == 0
}

// Len returns the total number of examples.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

// Letters returns the letters in canonical order.
func (d *Dataset) Letters() []core.Letter {
	if d == nil {
		return nil
	}
	return append([]core.Letter(nil), d.letters...)
}

// Examples returns deep copies of the examples for l, in stored order.
func (d *Dataset) Examples(l core.Letter) []core.Pictograph {
	if d == nil {
		return nil
	}
	src := d.examples[l]
	out := make([]core.Pictograph, len(src))
	for i, ex := range src {
		out[i] = ex.Clone()
	}
	return out
}

// Each visits every example in canonical letter order, then stored example
// order, until fn returns false. fn receives a copy of each example.
func (d *Dataset) Each(fn func(l core.Letter, ex core.Pictograph) bool) {
	if d == nil {
		return
	}
	for _, l := range d.letters {
		for _, ex := range d.examples[l] {
			if !fn(l, ex.Clone()) {
				return
			}
		}
	}
}

// Map returns a deep copy of the dataset as a plain map.
func (d *Dataset) Map() map[core.Letter][]core.Pictograph {
	out := make(map[core.Letter][]core.Pictograph)
	if d == nil {
		return out
	}
	for _, l := range d.letters {
		out[l] = d.Examples(l)
	}
	return out
}

// Validate checks that the dataset is non-empty, every letter is part of the
// alphabet, and every example is well formed.
func (d *Dataset) Validate() error {
	if d.Empty() {
		return ErrEmptyDataset
	}
	for _, l := range d.letters {
		if !l.Known() {
			return fmt.Errorf("%w: %q", ErrUnknownLetter, l)
		}
		for i, ex := range d.examples[l] {
			if err := ex.Validate(); err != nil {
				return fmt.Errorf("%w: letter %s example %d: %v", ErrInvalidExample, l, i, err)
			}
		}
	}
	return nil
}
