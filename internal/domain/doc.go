// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The central entity is Task. Result is the outcome type returned by the
// mutating operations of the service layer.
package domain
