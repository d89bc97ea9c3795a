// Package aggregates defines the coded error taxonomy shared by the workspace core,
// the persistence layer and the HTTP surface.
package aggregates
