//go:build integration

package testutil

import (
	"encoding/json"
	"shareit/pkg/client"
	"testing"
	"time"
)

type Response = client.Response

// Client fails the test on transport errors so scenarios only deal with
// responses.
type Client struct {
	api *client.ShareItClient
}

func NewClient(baseURL string) *Client {
	return &Client{api: client.NewShareItClient(baseURL)}
}

// As returns a client that sends every request as userID.
func (c *Client) As(userID string) *UserClient {
	return &UserClient{http: c.api.HTTP(), userID: userID}
}

func (c *Client) DeleteUser(t *testing.T, userID string) *Response {
	t.Helper()
	return must(t)(c.api.DeleteUser(userID))
}

func (c *Client) GetItem(t *testing.T, actorID, itemID string) *Response {
	t.Helper()
	return must(t)(c.api.GetItem(actorID, itemID))
}

func (c *Client) GetBooking(t *testing.T, actorID, bookingID string) *Response {
	t.Helper()
	return must(t)(c.api.GetBooking(actorID, bookingID))
}

func (c *Client) WaitForReady(t *testing.T, maxWait time.Duration) {
	t.Helper()
	if err := c.api.HTTP().WaitForReady(maxWait); err != nil {
		t.Fatal(err)
	}
}

type UserClient struct {
	http   *client.HttpClient
	userID string
}

func (u *UserClient) GET(t *testing.T, path string) *Response {
	t.Helper()
	return must(t)(u.http.GET(path, u.userID))
}

func (u *UserClient) POST(t *testing.T, path string, body any) *Response {
	t.Helper()
	return must(t)(u.http.POST(path, u.userID, body))
}

func must(t *testing.T) func(*Response, error) *Response {
	t.Helper()
	return func(resp *Response, err error) *Response {
		t.Helper()
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return resp
	}
}

func AssertStatusCode(t *testing.T, resp *Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(resp.Body))
	}
}

// ErrorCode extracts the stable error code from an error response.
func ErrorCode(t *testing.T, resp *Response) string {
	t.Helper()
	var errResp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Body, &errResp); err != nil {
		t.Fatalf("failed to decode error body %s: %v", resp.Body, err)
	}
	return errResp.Code
}

// Decode unwraps the data envelope of a successful response.
func Decode[T any](t *testing.T, resp *Response, status int) T {
	t.Helper()
	AssertStatusCode(t, resp, status)
	var out T
	if err := resp.DecodeData(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}
