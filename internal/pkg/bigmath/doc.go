// Package bigmath provides exact arbitrary-precision integer routines on top of
// math/big: modular exponentiation by repeated squaring, the extended Euclidean
// algorithm, least common multiples, integer n-th roots with an exactness flag
// and integer roots of monic quadratics.
//
// None of the routines use floating point.
package bigmath
