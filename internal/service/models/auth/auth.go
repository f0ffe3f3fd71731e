package auth

// RegisterModel is the caller's input for account registration.
type RegisterModel struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginModel carries login credentials.
type LoginModel struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenModel is returned after a successful register or login.
type TokenModel struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
