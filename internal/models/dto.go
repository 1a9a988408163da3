package models

// CredentialsRequest is the form body of POST /register and POST /login.
type CredentialsRequest struct {
	Username string `form:"username" validate:"required,max=64"`
	Password string `form:"password" validate:"required,max=256"`
}

// SecretRequest is the form body of POST /submit.
type SecretRequest struct {
	Secret string `form:"secret" validate:"required,max=2048"`
}

// AuthState is the position of a login attempt in the authentication flow.
type AuthState string

const (
	AuthStateAnonymous      AuthState = "anonymous"
	AuthStateAuthenticating AuthState = "authenticating"
	AuthStateAuthenticated  AuthState = "authenticated"
	AuthStateRejected       AuthState = "rejected"
)

// AuthResult is returned by the authenticators. User is only set when State
// is AuthStateAuthenticated.
type AuthResult struct {
	State AuthState
	User  *User
}

// PageData is passed to every rendered view.
type PageData struct {
	User    *User
	Error   string
	Secrets []PublicSecret
}
