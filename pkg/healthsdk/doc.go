// Package healthsdk is a client for the Health ID authorization server and
// the Provider ID service that sits behind it.
//
// A federated sign-in is three sequential calls, each depending on the
// previous one's output:
//
//	res, err := c.ExchangeAuthorizationCode(ctx, code, redirectURI, health)
//	// res.AccessToken is the Health ID token
//	res, err = c.ExchangeForProviderToken(ctx, res.AccessToken, provider)
//	// res.AccessToken is the Provider ID token
//	profile, err := c.FetchProfile(ctx, res.AccessToken, provider)
//
// None of the calls retry. Upstream bodies that are not JSON are returned as
// plain strings, never as errors. Transport failures are reported as
// ErrTransport, and calls that exceed Client.Timeout as ErrTimeout.
//
// Both upstreams wrap their payload in a "data" envelope. ExtractAccessToken
// is the single place that knows where an access token may live.
package healthsdk
