package httpclient

import "net/http"

// AuthConfig carries the credential sent with every request. Both LLM
// backends that need one accept a bearer token.
type AuthConfig struct {
	Token string
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Token: token}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
}
