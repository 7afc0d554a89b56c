package healthsdk

// ExtractAccessToken finds the access token in an upstream body. It looks at
// data.access_token first and then at a top-level access_token. Only a
// non-empty string counts.
func ExtractAccessToken(body any) (string, bool) {
	if data, ok := envelope(body); ok {
		if token, ok := nonEmptyString(data["access_token"]); ok {
			return token, true
		}
	}
	if obj, ok := body.(map[string]any); ok {
		if token, ok := nonEmptyString(obj["access_token"]); ok {
			return token, true
		}
	}
	return "", false
}

// NormalizeTokenResponse flattens a Health ID token response so that
// access_token sits at the top level, the shape OAuth2 clients expect.
// A body that already carries a top-level access_token, or carries no
// enveloped token, is returned unchanged.
func NormalizeTokenResponse(body any) any {
	if obj, ok := body.(map[string]any); ok {
		if _, flat := nonEmptyString(obj["access_token"]); flat {
			return body
		}
	}

	data, ok := envelope(body)
	if !ok {
		return body
	}
	token, ok := nonEmptyString(data["access_token"])
	if !ok {
		return body
	}

	out := map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
	}
	if v, ok := present(data, "token_type"); ok {
		out["token_type"] = v
	}
	if v, ok := present(data, "refresh_token"); ok {
		out["refresh_token"] = v
	}
	if v, ok := present(data, "expires_in"); ok {
		out["expires_in"] = v
	} else if v, ok := present(data, "expires"); ok {
		out["expires_in"] = v
	}
	if v, ok := present(data, "scope"); ok {
		out["scope"] = v
	}
	return out
}

// ProfileData returns the "data" object of a profile response.
func ProfileData(body any) (map[string]any, bool) {
	return envelope(body)
}

func envelope(body any) (map[string]any, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, false
	}
	data, ok := obj["data"].(map[string]any)
	return data, ok
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

func present(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	return v, ok && v != nil
}
