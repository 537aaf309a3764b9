package apiclient

import "strconv"

// Wire shapes for the auth operations. Each registered operation has its
// request/response contract pinned here so call sites stay statically
// typed.

// LoginRequest is the body of OpLogin.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the user block inside a login response.
type LoginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// LoginResponse is the data payload of OpLogin. RefreshToken is optional;
// some deployments only issue access tokens.
type LoginResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	User         LoginUser `json:"user"`
}

// RegisterRequest is the body of OpRegister.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone,omitempty"`
}

// RegisteredUser is the data payload of OpRegister.
type RegisteredUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// FormatID renders a numeric wire ID as the string form used everywhere
// outside the wire layer.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
