package domain

// UserProfile represents the authenticated identity extracted from a
// validated access token. Identity itself lives in the hosted auth
// provider; the backend only consumes the claims.
type UserProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}
