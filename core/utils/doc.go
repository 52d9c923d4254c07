// Package utils provides small helpers shared across fleetwash packages.
//
// The text helpers fold user and catalog input into a comparable form: depot names,
// usernames and segment labels arrive with mixed case and Spanish diacritics
// ("Guápiles", "GUAPILES ", "guapiles") and must all resolve to the same key.
package utils
