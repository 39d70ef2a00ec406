// pkg/core/letter.go
package core

import "sort"

// Letter is a symbol of the notation alphabet.
type Letter string

// LetterType groups letters by the kind of motions they combine.
type LetterType int

const (
	Type1 LetterType = iota + 1 // dual-shift
	Type2                       // shift
	Type3                       // cross-shift
	Type4                       // dash
	Type5                       // dual-dash
	Type6                       // static
)

// String returns "Type1".."Type6".
func (t LetterType) String() string {
	switch t {
	case Type1:
		return "Type1"
	case Type2:
		return "Type2"
	case Type3:
		return "Type3"
	case Type4:
		return "Type4"
	case Type5:
		return "Type5"
	case Type6:
		return "Type6"
	}
	return "Unknown"
}

var lettersByType = map[LetterType][]Letter{
	Type1: {"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T", "U", "V"},
	Type2: {"W", "X", "Y", "Z", "Σ", "Δ", "θ", "Ω"},
	Type3: {"W-", "X-", "Y-", "Z-", "Σ-", "Δ-", "θ-", "Ω-"},
	Type4: {"Φ", "Ψ", "Λ"},
	Type5: {"Φ-", "Ψ-", "Λ-"},
	Type6: {"α", "β", "Γ"},
}

// Alphabet is the canonical letter order used for every dataset scan.
var Alphabet []Letter

var (
	letterType  = map[Letter]LetterType{}
	letterOrder = map[Letter]int{}
)

func init() {
	for t := Type1; t <= Type6; t++ {
		for _, l := range lettersByType[t] {
			letterType[l] = t
			letterOrder[l] = len(Alphabet)
			Alphabet = append(Alphabet, l)
		}
	}
}

// LetterTypeOf classifies a letter. Unknown letters default to Type1.
func LetterTypeOf(l Letter) LetterType {
	if t, ok := letterType[l]; ok {
		return t
	}
	return Type1
}

// Known reports whether l belongs to the alphabet.
func (l Letter) Known() bool {
	_, ok := letterOrder[l]
	return ok
}

// Type is shorthand for LetterTypeOf(l).
func (l Letter) Type() LetterType {
	return LetterTypeOf(l)
}

// LettersOfType returns a copy of the letters in category t.
func LettersOfType(t LetterType) []Letter {
	return append([]Letter(nil), lettersByType[t]...)
}

// SortLetters orders letters canonically: alphabet letters first in alphabet
// order, unknown letters after them in lexical order.
func SortLetters(letters []Letter) {
	sort.SliceStable(letters, func(i, j int) bool {
		oi, iKnown := letterOrder[letters[i]]
		oj, jKnown := letterOrder[letters[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return letters[i] < letters[j]
		}
	})
}
