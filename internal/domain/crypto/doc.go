// Package crypto defines the value types of the textbook RSA toolkit: immutable public and private keys,
// key pairs, ciphertext sets fed to the broadcast attack, continued fraction expansions and the candidates
// and results produced by the attacks, together with the errors they share.
package crypto
