package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a resty client preset for talking to the accounts API:
// base URL and JSON accept header. Used by smoke and end-to-end tests.
//
//	client := utils.NewHTTPClient(srv.URL)
//	resp, err := client.R().SetBody(req).Post("/login")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client rooted at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}

// WithBearer sets the Authorization header sent by every later request.
func (c *HTTPClient) WithBearer(token string) *HTTPClient {
	c.SetAuthToken(token)
	return c
}
