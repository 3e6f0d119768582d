package httpclient

import (
	"errors"
	"net/http"
)

// Placement says where a credential travels.
type Placement int

const (
	InHeader Placement = iota
	InQuery
)

// Auth is one credential attached to outgoing requests.
type Auth struct {
	In Placement
	// Name is the header or query parameter.
	Name string
	// Value is sent as is; Bearer prefixes it already.
	Value string
}

// HeaderKey sends key in the header called name.
func HeaderKey(name, key string) *Auth {
	return &Auth{In: InHeader, Name: name, Value: key}
}

// QueryKey sends key as the query parameter called name.
func QueryKey(name, key string) *Auth {
	return &Auth{In: InQuery, Name: name, Value: key}
}

// Bearer sends token as an Authorization: Bearer header.
func Bearer(token string) *Auth {
	if token == "" {
		return &Auth{Name: "Authorization"}
	}
	return &Auth{Name: "Authorization", Value: "Bearer " + token}
}

func (a *Auth) validate() error {
	switch {
	case a.Name == "":
		return errors.New("httpclient: auth needs a header or parameter name")
	case a.Value == "":
		return errors.New("httpclient: auth for " + a.Name + " has an empty api key")
	}
	return nil
}

func (a *Auth) apply(req *http.Request) {
	if a == nil {
		return
	}
	if a.In == InQuery {
		q := req.URL.Query()
		q.Set(a.Name, a.Value)
		req.URL.RawQuery = q.Encode()
		return
	}
	req.Header.Set(a.Name, a.Value)
}
