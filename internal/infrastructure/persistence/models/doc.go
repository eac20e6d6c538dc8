// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain entities so the domain layer stays free
// of ORM tags.
//
// Each model has a <Name>ModelFromDomain constructor and a ToDomain method.
// Repositories read and write models only.
package models
