// Package services provides domain services that implement business decisions
// spanning more than one aggregate in the parcel tracking system.
//
// The package includes:
//   - AccessGate: the pure authorization decision service gating repository
//     operations by caller role and record ownership
//
// Domain services hold no state and never touch storage; they are given the
// inputs a decision needs and return a result or a typed denial.
package services
