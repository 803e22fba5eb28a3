package models

// User represents a registered user's profile.
//
// The password hash is deliberately absent: credentials are stored under their own
// key by the auth package and never travel with the profile.
type User struct {
	// ID is the unique identifier for the user (UUID format). Immutable.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// Phone, Address and Bio are optional profile details.
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Bio     string `json:"bio,omitempty"`
}

// ProfileUpdate lists the profile fields a user may change.
// A nil field is left untouched. The ID is never updatable.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Bio     *string `json:"bio,omitempty"`
}

// Apply returns a copy of u with the non-nil fields of p applied.
func (p ProfileUpdate) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	return u
}
