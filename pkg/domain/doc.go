// Package domain contains the core entities of the smart site backend (leads,
// demo requests, calculator inputs and projections) together with the pure
// functions that operate on them. Nothing here performs I/O.
package domain
