// Package persistence stores benchmark timing records through GORM on SQLite or PostgreSQL.
package persistence
