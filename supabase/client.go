// Package supabase talks to the hosted backend (storage and auth admin APIs)
// with the service role key. It must only run server side.
package supabase

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError is the error body returned by the storage and auth services. The two
// services disagree on field names, so every known one is decoded.
type APIError struct {
	StatusCode  any    `json:"statusCode"`
	Code        any    `json:"code"`
	ErrorCode   string `json:"error_code"`
	Err         string `json:"error"`
	Message     string `json:"message"`
	Msg         string `json:"msg"`
	Description string `json:"error_description"`
}

func (e *APIError) message() string {
	for _, m := range []string{e.Message, e.Msg, e.Description, e.Err, e.ErrorCode} {
		if m != "" {
			return m
		}
	}
	return ""
}

// RequestError is returned for any non-2xx response.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase: unexpected status %d", e.Status)
	}
	return e.Message
}

func newRestyClient(baseURL, serviceKey string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("apikey", serviceKey).
		SetAuthToken(serviceKey)
}

// checkResponse turns transport failures and error statuses into a single error.
func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}

	reqErr := &RequestError{Status: resp.StatusCode()}
	if apiErr, ok := resp.Error().(*APIError); ok && apiErr != nil {
		reqErr.Message = apiErr.message()
	}
	if reqErr.Message == "" {
		reqErr.Message = fmt.Sprintf("%s failed with status %d: %s", op, resp.StatusCode(), resp.String())
	}
	return reqErr
}
