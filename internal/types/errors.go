package types

import "errors"

var (
	ErrTermNotFound    = errors.New("term not found in corpus")
	ErrInvalidSparsity = errors.New("sparsity threshold out of [0,1]")
	ErrTagging         = errors.New("pos tagging failed")
	ErrTagAlignment    = errors.New("tagger output does not align with terms")
	ErrNotMonotonic    = errors.New("stage grew the matrix")
)
