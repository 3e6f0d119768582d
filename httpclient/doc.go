// Package httpclient provides a small configurable HTTP client: default
// headers, API key or bearer auth, JSON and multipart bodies, and status
// classification into typed errors.
//
// # Usage
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://microsoft-translator-text.p.rapidapi.com",
//	    Auth:    httpclient.HeaderKey("X-RapidAPI-Key", key),
//	})
//
//	resp, err := httpclient.Post[[]Result](ctx, a, "/translate", body,
//	    httpclient.WithQueryParam("to[0]", "hi"))
//
// Transport failures come back as ErrCodeTimeout or ErrCodeConnection;
// non-2xx responses as auth, rate-limit, validation or server errors; a 2xx
// body that does not decode as *DecodeError.
package httpclient
