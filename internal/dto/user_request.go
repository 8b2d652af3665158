package dto

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	ID        int64   `json:"-"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	IsStaff   *bool   `json:"is_staff"`
}

// ProfileRequest is a partial update; nil fields are left untouched.
type ProfileRequest struct {
	ID                         int64   `json:"-"`
	CompanyName                *string `json:"company_name" validate:"omitempty,max=255"`
	CompanyWebsite             *string `json:"company_website" validate:"omitempty,url"`
	UserType                   *string `json:"user_type" validate:"omitempty,oneof=exporter buyer both"`
	Country                    *string `json:"country" validate:"omitempty,max=100"`
	PhoneNumber                *string `json:"phone_number" validate:"omitempty,max=20"`
	Address                    *string `json:"address"`
	ProfilePicture             *string `json:"profile_picture"`
	BusinessRegistrationNumber *string `json:"business_registration_number" validate:"omitempty,max=100"`
	TaxID                      *string `json:"tax_id" validate:"omitempty,max=100"`
	Industry                   *string `json:"industry" validate:"omitempty,max=100"`
	Verified                   *bool   `json:"verified"`
}
