// Package app wires the RSA primitives into application services.
package app
