// models/user.go
package models

// Roles carried in identity tokens.
const (
	RoleUser     = "user"
	RoleProvider = "provider"
)

// User is the subset of the identity record this service reads.
type User struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Role     string `bson:"role" json:"role"`
	FCMToken string `bson:"fcmToken,omitempty" json:"-"`
}

// Identity is the authenticated caller, as supplied by the auth middleware.
type Identity struct {
	ID   string
	Name string
	Role string
}
