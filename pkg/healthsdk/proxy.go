package healthsdk

import (
	"bytes"
	"context"
	"net/http"
)

// ProxyResult is a Health ID token response ready to be relayed to a client.
// When IsJSON is false, Raw must be relayed verbatim.
type ProxyResult struct {
	Status      int
	ContentType string
	IsJSON      bool
	Body        any
	Raw         []byte
}

// ProxyToken forwards a token request body unchanged to the Health ID token
// endpoint and normalises a JSON answer with NormalizeTokenResponse.
func (c *Client) ProxyToken(ctx context.Context, contentType string, body []byte) (*ProxyResult, error) {
	if contentType == "" {
		contentType = "application/x-www-form-urlencoded"
	}

	resp, err := c.do(ctx, "proxy token request",
		http.MethodPost,
		c.HealthBaseURL+pathHealthToken,
		bytes.NewReader(body),
		map[string]string{
			"Content-Type": contentType,
			"Accept":       "application/json",
		},
	)
	if err != nil {
		return nil, err
	}

	if !resp.isJSON {
		return &ProxyResult{
			Status:      resp.status,
			ContentType: resp.contentType,
			Raw:         resp.raw,
		}, nil
	}

	return &ProxyResult{
		Status:      resp.status,
		ContentType: "application/json",
		IsJSON:      true,
		Body:        NormalizeTokenResponse(resp.body),
		Raw:         resp.raw,
	}, nil
}
