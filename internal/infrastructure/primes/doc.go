// Package primes provides prime sources that draw distinct verified primes from a closed range.
//
// The sieve source enumerates every prime of a narrow range and samples without replacement,
// so it reports exhaustion exactly. The random source draws probable primes from ranges too
// wide to enumerate and gives up after a bounded number of draws.
package primes
