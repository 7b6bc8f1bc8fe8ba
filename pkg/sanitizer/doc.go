// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. Invalid input never produces an error; blank input is
// returned as an empty string so the validator can reject it.
package sanitizer
