// Package parcel implements the parcel aggregate for the tracking domain.
//
// The package contains the Parcel aggregate root and its value objects:
// Item (contents of a parcel), Party (sender or receiver), Status (forward-only
// lifecycle state machine), and Category (item classification). It also houses
// the reference code generator, which produces the human-shareable tracking
// token a parcel is looked up by.
//
// All types enforce their invariants through validated constructors; zero
// values fail Validate and cannot enter the rest of the system.
package parcel
