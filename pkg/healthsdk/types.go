package healthsdk

// TokenResponse is the flattened token shape the token proxy returns when
// Health ID answered with an enveloped token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    any    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ProfileReadResponse is the body of the one-time profile read.
type ProfileReadResponse struct {
	OK      bool   `json:"ok"`
	Profile any    `json:"profile,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency in /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Sealer   string `json:"sealer"`
}
