package healthsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// TokenExchangeResult is the outcome of one token exchange. Body is the
// decoded JSON or, when the upstream did not answer with JSON, the raw text.
// AccessToken is empty when the upstream did not issue a usable token,
// whatever Status says.
type TokenExchangeResult struct {
	Status      int
	Body        any
	AccessToken string
}

// OK reports whether the exchange produced an access token.
func (r *TokenExchangeResult) OK() bool { return r.AccessToken != "" }

// ProfileResult is the Provider ID profile response.
type ProfileResult struct {
	Status int
	Body   any
}

// OK reports whether the upstream answered with a 2xx status.
func (r *ProfileResult) OK() bool { return r.Status >= 200 && r.Status < 300 }

// ExchangeAuthorizationCode trades a Health ID authorization code for a
// Health ID access token.
func (c *Client) ExchangeAuthorizationCode(
	ctx context.Context,
	code, redirectURI string,
	health Credentials,
) (*TokenExchangeResult, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"client_id":     {health.ClientID},
		"client_secret": {health.ClientSecret},
	}

	resp, err := c.do(ctx, "exchange authorization code",
		http.MethodPost,
		c.HealthBaseURL+pathHealthToken,
		strings.NewReader(form.Encode()),
		map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Accept":       "application/json",
		},
	)
	if err != nil {
		return nil, err
	}

	return tokenResult(resp), nil
}

type providerTokenRequest struct {
	ClientID  string `json:"client_id"`
	SecretKey string `json:"secret_key"`
	TokenBy   string `json:"token_by"`
	Token     string `json:"token"`
}

// ExchangeForProviderToken presents a Health ID access token to Provider ID
// and returns the Provider ID access token.
func (c *Client) ExchangeForProviderToken(
	ctx context.Context,
	healthAccessToken string,
	provider Credentials,
) (*TokenExchangeResult, error) {
	body, err := json.Marshal(providerTokenRequest{
		ClientID:  provider.ClientID,
		SecretKey: provider.ClientSecret,
		TokenBy:   TokenByHealthID,
		Token:     healthAccessToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.do(ctx, "exchange provider token",
		http.MethodPost,
		c.ProviderBaseURL+pathProviderToken,
		bytes.NewReader(body),
		map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	)
	if err != nil {
		return nil, err
	}

	return tokenResult(resp), nil
}

// FetchProfile reads the caller's Provider ID profile. Success is judged by
// the caller from ProfileResult.OK.
func (c *Client) FetchProfile(
	ctx context.Context,
	providerAccessToken string,
	provider Credentials,
) (*ProfileResult, error) {
	resp, err := c.do(ctx, "fetch provider profile",
		http.MethodGet,
		c.ProviderBaseURL+pathProfile+"?position_type=1",
		nil,
		map[string]string{
			"Content-Type":  "application/json",
			"Accept":        "application/json",
			"Authorization": "Bearer " + providerAccessToken,
			"client-id":     provider.ClientID,
			"secret-key":    provider.ClientSecret,
		},
	)
	if err != nil {
		return nil, err
	}

	return &ProfileResult{Status: resp.status, Body: resp.body}, nil
}

func tokenResult(resp *response) *TokenExchangeResult {
	token, _ := ExtractAccessToken(resp.body)
	return &TokenExchangeResult{
		Status:      resp.status,
		Body:        resp.body,
		AccessToken: token,
	}
}
