// Package catalog is the product filter/sort engine and the category-scoped
// listing built on it. Everything here is pure: inputs are never mutated and
// the same inputs always produce the same output.
package catalog
