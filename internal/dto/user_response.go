package dto

import "time"

type UserResponse struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsStaff    bool      `json:"is_staff"`
	CreatedAt  time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type ProfileResponse struct {
	ID                         int64        `json:"id"`
	User                       UserResponse `json:"user"`
	CompanyName                *string      `json:"company_name"`
	CompanyWebsite             *string      `json:"company_website"`
	UserType                   string       `json:"user_type"`
	Country                    *string      `json:"country"`
	PhoneNumber                *string      `json:"phone_number"`
	Address                    *string      `json:"address"`
	ProfilePicture             *string      `json:"profile_picture"`
	BusinessRegistrationNumber *string      `json:"business_registration_number"`
	TaxID                      *string      `json:"tax_id"`
	Industry                   *string      `json:"industry"`
	Verified                   bool         `json:"verified"`
	CreatedAt                  time.Time    `json:"created_at"`
	UpdatedAt                  time.Time    `json:"updated_at"`
}
