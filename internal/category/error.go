package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrDefaultCategory  = errors.New("cannot delete default category")
	ErrMissingName      = errors.New("missing category name")
)
