// Package conv provides checked numeric conversion utilities.
//
// Integer casts perform bounds checking to prevent overflow when converting
// between signed/unsigned and different bit-width integer types. The numeric
// helpers normalise any Go integer or float kind to float64, and compare two
// numbers of possibly different kinds by value.
package conv
