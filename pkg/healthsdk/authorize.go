package healthsdk

import (
	"golang.org/x/oauth2"

	"github.com/aussiebroadwan/providerid/pkg/cryptox"
)

// OAuth2Config describes the Health ID authorization endpoints for a client.
// Health ID wraps its token response in a "data" envelope, so only the
// authorization half of the returned config is usable with x/oauth2.
func (c *Client) OAuth2Config(clientID, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.HealthBaseURL + pathAuthorize,
			TokenURL:  c.HealthBaseURL + pathHealthToken,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizeURL builds the Health ID authorization redirect carrying
// client_id, redirect_uri, response_type=code and state.
func (c *Client) AuthorizeURL(clientID, redirectURI, state string) string {
	return c.OAuth2Config(clientID, redirectURI).AuthCodeURL(state)
}

// NewState returns a fresh opaque state value for one authorization attempt.
func NewState() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize128)
}
