package healthsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// response is an upstream answer with its body decoded as JSON when
// possible and kept as text otherwise.
type response struct {
	status      int
	contentType string
	raw         []byte
	body        any
	isJSON      bool
}

// do sends one request under Client.Timeout and buffers the response.
func (c *Client) do(
	ctx context.Context,
	op, method, url string,
	body io.Reader,
	headers map[string]string,
) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classify(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(op, err)
	}

	parsed, isJSON := readJSONOrText(raw)
	return &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		raw:         raw,
		body:        parsed,
		isJSON:      isJSON,
	}, nil
}

// readJSONOrText decodes raw as a single JSON value. Anything else, including
// an empty body, comes back as the original text.
func readJSONOrText(raw []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw), false
	}
	if _, err := dec.Token(); err != io.EOF {
		return string(raw), false
	}
	return v, true
}
