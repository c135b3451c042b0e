// Package reporting exports benchmark runs as CSV tables, one row per prime bit window.
package reporting
