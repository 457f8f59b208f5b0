// Package user models the people interacting with the tracking system.
//
// Profiles are derived from the external auth provider's identity metadata
// via ProfileFromMetadata, which spells out the defaulting rules explicitly.
// Caller is the minimal identity-and-role pair that flows into every core
// operation in place of any ambient session state.
package user
