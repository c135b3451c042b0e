// Package cryptanalysis implements the Hastad broadcast attack and Wiener's small private
// exponent attack against textbook RSA, using exact integer arithmetic throughout.
package cryptanalysis
