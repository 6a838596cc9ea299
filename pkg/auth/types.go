package auth

import (
	"time"

	"github.com/dmitrymomot/btcpulse/pkg/enrich"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Location is the coarse place a login came from.
type Location struct {
	Country string `json:"country" bson:"country"`
	City    string `json:"city" bson:"city"`
	Region  string `json:"region" bson:"region"`
}

// LoginEvent records one successful sign-in. LastLogin carries no Location.
type LoginEvent struct {
	IP        string    `json:"ip" bson:"ip"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Browser   string    `json:"browser" bson:"browser"`
	OS        string    `json:"os" bson:"os"`
	Device    string    `json:"device" bson:"device"`
	Location  *Location `json:"location,omitempty" bson:"location,omitempty"`
}

// User is a stored account. PasswordHash never leaves the process.
type User struct {
	ID           string                   `json:"_id" bson:"_id"`
	Username     string                   `json:"username" bson:"username"`
	Email        string                   `json:"email" bson:"email"`
	PasswordHash string                   `json:"-" bson:"password,omitempty"`
	Role         Role                     `json:"role" bson:"role"`
	SignupInfo   *enrich.ClientDescriptor `json:"signupInfo,omitempty" bson:"signupInfo,omitempty"`
	LastLogin    *LoginEvent              `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	LoginHistory []LoginEvent             `json:"loginHistory,omitempty" bson:"loginHistory,omitempty"`
	CreatedAt    time.Time                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Profile is the public subset returned after register and login.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// RegisterInput is the self-service sign-up payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the password sign-in payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewLoginEvent snapshots a descriptor into a history entry.
func NewLoginEvent(d enrich.ClientDescriptor, at time.Time) LoginEvent {
	return LoginEvent{
		IP:        d.IP,
		Timestamp: at,
		Browser:   d.Browser,
		OS:        d.OS,
		Device:    d.Device,
		Location: &Location{
			Country: d.Country,
			City:    d.City,
			Region:  d.Region,
		},
	}
}
