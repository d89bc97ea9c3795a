// Package aggregates owns transaction boundaries for multi-row workspace writes and
// maps storage failures onto domain error codes.
package aggregates
