package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// providerError is the error body of the Postmark API.
type providerError struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	detail := strings.TrimSpace(string(resp.Body()))
	var pe providerError
	if json.Unmarshal(resp.Body(), &pe) == nil && pe.Message != "" {
		detail = fmt.Sprintf("code %d: %s", pe.ErrorCode, pe.Message)
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode())
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case code == http.StatusUnprocessableEntity, code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrRejected, detail)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrUnavailable, detail)
	default:
		return fmt.Errorf("http %d: %s", code, detail)
	}
}
