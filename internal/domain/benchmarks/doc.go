// Package benchmarks defines timing records of the RSA primitives and the contracts of the
// services and repositories that produce and store them.
package benchmarks
