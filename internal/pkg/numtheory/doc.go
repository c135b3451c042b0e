// Package numtheory implements the number-theoretic primitives RSA key
// generation is built from: distinct prime sampling through a pluggable
// PrimeSource, co-primality, Euler's totient, Carmichael's function, modular
// inverses via the extended Euclidean algorithm and Chinese remainder
// reconstruction.
package numtheory
