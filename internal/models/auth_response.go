package models

// TokenResponse carries the signed identity token returned after a
// successful registration or login
type TokenResponse struct {
	Token string `json:"token"`
}
