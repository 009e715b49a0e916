package model

// Principal is the identity the external provider asserts for a request.
type Principal struct {
	ID            string
	Email         string
	DisplayName   string
	AvatarURL     string
	Provider      string // e.g. "email", "google"
	EmailVerified bool
}
