package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.postmarkapp.com", 10*time.Second)
//	resp, err := client.R().SetBody(msg).Post("/email/withTemplate")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client bound to baseURL that sends and expects
// JSON, gives up on a request after timeout and retries twice on transport
// errors and 5xx responses.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &HTTPClient{Client: client}
}
