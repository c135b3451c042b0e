// Package cryptoalg defines the contracts of the textbook RSA processor and of the attacks run against it.
package cryptoalg
