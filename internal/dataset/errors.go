package dataset

import "errors"

var (
	// ErrEmptyDataset indicates a dataset without any examples.
	ErrEmptyDataset = errors.New("dataset: no examples")
	// ErrUnknownLetter indicates a letter outside the notation alphabet.
	ErrUnknownLetter = errors.New("dataset: unknown letter")
	// ErrInvalidExample indicates an example with an attribute outside its domain.
	ErrInvalidExample = errors.New("dataset: invalid example")
	// ErrMissingColumn indicates a CSV header without a required column.
	ErrMissingColumn = errors.New("dataset: missing column")
)
