// Package models contains GORM persistence models that map to database tables.
// Models stay separate from domain types so the domain layer carries no ORM tags;
// repositories convert at the boundary with ToDomain and the *FromDomain helpers.
package models
