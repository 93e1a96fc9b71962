package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default) and explicit false.
type GenerateRequest struct {
	Length         int   `json:"length"`
	Count          int   `json:"count"`
	Lowercase      *bool `json:"lowercase"`
	Uppercase      *bool `json:"uppercase"`
	Digits         *bool `json:"digits"`
	Symbols        *bool `json:"symbols"`
	ExcludeSimilar *bool `json:"exclude_similar"`
}

// GeneratedPassword is one password together with its strength.
type GeneratedPassword struct {
	Password string `json:"password"`
	Strength int    `json:"strength"`
	Rating   string `json:"rating"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Length    int                 `json:"length"`
	Passwords []GeneratedPassword `json:"passwords"`
}

// StrengthRequest asks for the strength of a caller-supplied password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse represents a strength estimation response.
type StrengthResponse struct {
	Strength int    `json:"strength"`
	Rating   string `json:"rating"`
}
