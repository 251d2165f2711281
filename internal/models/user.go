package models

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// User is the current identity of a session.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Avatar    string   `json:"avatar,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Address   *Address `json:"address,omitempty"`
	IsArtisan bool     `json:"isArtisan"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterData represents the request body for registration.
type RegisterData struct {
	FirstName       string `json:"firstName" validate:"required,personname"`
	LastName        string `json:"lastName" validate:"required,personname"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	IsArtisan       bool   `json:"isArtisan"`
}

// ProfileUpdate is a partial User. Nil fields are left untouched.
type ProfileUpdate struct {
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string  `json:"firstName,omitempty" validate:"omitempty,personname"`
	LastName  *string  `json:"lastName,omitempty" validate:"omitempty,personname"`
	Avatar    *string  `json:"avatar,omitempty"`
	Phone     *string  `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   *Address `json:"address,omitempty"`
	IsArtisan *bool    `json:"isArtisan,omitempty"`
}

// Apply merges the set fields onto u.
func (p ProfileUpdate) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		addr := *p.Address
		u.Address = &addr
	}
	if p.IsArtisan != nil {
		u.IsArtisan = *p.IsArtisan
	}
	return u
}
