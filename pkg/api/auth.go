package api

// LoginRequest is the credential payload for POST /token/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the bearer token pair issued by POST /token/.
// The backend uses short JSON keys ("access"/"refresh").
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest is the public account-creation payload for POST /register/.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterResponse is the backend's answer to a successful registration.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    struct {
		Email string `json:"email"`
	} `json:"user"`
}

// UserProfile is the current-user record returned by GET /users/me/.
// It is fetched once per session and treated as opaque afterwards.
type UserProfile struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	RoleDisplay string `json:"role_display,omitempty"`
	IsActive    bool   `json:"is_active"`
	DateJoined  string `json:"date_joined,omitempty"`
}

// FullName returns "First Last", falling back to the username.
func (u *UserProfile) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
