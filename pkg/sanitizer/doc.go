// Package sanitizer provides input normalization for account, teacher and
// booking fields.
//
// All functions are idempotent: applying them multiple times produces the
// same result. Invalid input is handled by returning an empty value rather
// than an error; validation happens afterwards.
//
// Normalization includes:
//   - Names and slot labels: collapse whitespace, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - URLs: default to https, lowercase the host, drop utm_* tracking parameters
//   - Slices: remove duplicates and empty values after normalization, preserving order
package sanitizer
