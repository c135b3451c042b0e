// Package models contains the GORM database models of the persistence layer.
// They are kept apart from the domain entities and converted with ToDomain and FromDomain.
package models
