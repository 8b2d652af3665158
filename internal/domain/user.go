package domain

import "time"

const (
	UserTypeExporter = "exporter"
	UserTypeBuyer    = "buyer"
	UserTypeBoth     = "both"
)

type User struct {
	ID             int64  `db:"id"`
	ExternalID     string `db:"external_id"`
	Username       string `db:"username"`
	Email          string `db:"email"`
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	HashedPassword string `db:"hashed_password"`
	IsStaff        bool   `db:"is_staff"`
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
}

type UserProfile struct {
	ID                         int64   `db:"id"`
	UserID                     int64   `db:"user_id"`
	CompanyName                *string `db:"company_name"`
	CompanyWebsite             *string `db:"company_website"`
	UserType                   string  `db:"user_type"`
	Country                    *string `db:"country"`
	PhoneNumber                *string `db:"phone_number"`
	Address                    *string `db:"address"`
	ProfilePicture             *string `db:"profile_picture"`
	BusinessRegistrationNumber *string `db:"business_registration_number"`
	TaxID                      *string `db:"tax_id"`
	Industry                   *string `db:"industry"`
	Verified                   bool    `db:"verified"`
	CreatedAt                  int64   `db:"created_at"`
	UpdatedAt                  int64   `db:"updated_at"`
}

// AuthToken is the single bearer token issued to a user.
type AuthToken struct {
	Key       string `db:"key"`
	UserID    int64  `db:"user_id"`
	CreatedAt int64  `db:"created_at"`
	ExpiresAt int64  `db:"expires_at"`
}

func (t AuthToken) Expired(now time.Time) bool {
	return t.ExpiresAt <= now.UnixMilli()
}

// Actor is the identity a request acts as. The zero value is anonymous.
type Actor struct {
	UserID     int64
	Username   string
	ExternalID string
	IsStaff    bool
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != 0
}

// CanManage reports whether the actor owns a resource belonging to ownerID or is staff.
func (a Actor) CanManage(ownerID int64) bool {
	if !a.IsAuthenticated() {
		return false
	}
	return a.IsStaff || a.UserID == ownerID
}

func IsValidUserType(userType string) bool {
	switch userType {
	case UserTypeExporter, UserTypeBuyer, UserTypeBoth:
		return true
	}
	return false
}
