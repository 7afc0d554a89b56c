package domain

import "net/url"

// CallbackParameters are the query parameters Health ID sends back to the
// callback route. Exactly one of Code or Error is expected to be set.
type CallbackParameters struct {
	Code  string
	State string
	Error string
}

// ParseCallbackParameters reads code, state and error from a callback query.
func ParseCallbackParameters(q url.Values) CallbackParameters {
	return CallbackParameters{
		Code:  q.Get("code"),
		State: q.Get("state"),
		Error: q.Get("error"),
	}
}
