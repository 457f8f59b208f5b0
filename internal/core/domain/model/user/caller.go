package user

import "parceltrack/internal/core/domain/model/kernel"

// Caller is the authenticated identity passed explicitly into every core
// operation. It is never ambient state: boundary code builds a Caller from
// the verified credential and hands it down the call chain.
type Caller struct {
	ID   kernel.UUID
	Role Role
}

// Validate checks the caller carries a constructed identity and a valid role.
func (c Caller) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return err
	}
	return c.Role.Validate()
}
