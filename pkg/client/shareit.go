package client

import (
	"fmt"
	"net/url"
)

// ShareItClient is a thin typed wrapper over the public API, used by integration tests.
type ShareItClient struct {
	httpClient *HttpClient
}

func NewShareItClient(baseURL string) *ShareItClient {
	return &ShareItClient{httpClient: NewHttpClient(baseURL)}
}

func (c *ShareItClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *ShareItClient) CreateUser(name, email string) (*Response, error) {
	return c.httpClient.POST("/users", "", map[string]any{"name": name, "email": email})
}

func (c *ShareItClient) DeleteUser(userID string) (*Response, error) {
	return c.httpClient.DELETE("/users/"+url.PathEscape(userID), "")
}

func (c *ShareItClient) CreateItem(ownerID string, body any) (*Response, error) {
	return c.httpClient.POST("/items", ownerID, body)
}

func (c *ShareItClient) GetItem(actorID, itemID string) (*Response, error) {
	return c.httpClient.GET("/items/"+url.PathEscape(itemID), actorID)
}

func (c *ShareItClient) CreateBooking(bookerID string, body any) (*Response, error) {
	return c.httpClient.POST("/bookings", bookerID, body)
}

func (c *ShareItClient) SetApproval(ownerID, bookingID string, approved bool) (*Response, error) {
	path := fmt.Sprintf("/bookings/%s?approved=%t", url.PathEscape(bookingID), approved)
	return c.httpClient.PATCH(path, ownerID, nil)
}

func (c *ShareItClient) GetBooking(actorID, bookingID string) (*Response, error) {
	return c.httpClient.GET("/bookings/"+url.PathEscape(bookingID), actorID)
}

func (c *ShareItClient) ListBookings(bookerID, state string, from, size int) (*Response, error) {
	path := "/bookings?state=" + url.QueryEscape(state) + "&" + pageQuery(from, size)
	return c.httpClient.GET(path, bookerID)
}

func (c *ShareItClient) ListOwnerBookings(ownerID, state string, from, size int) (*Response, error) {
	path := "/bookings/owner?state=" + url.QueryEscape(state) + "&" + pageQuery(from, size)
	return c.httpClient.GET(path, ownerID)
}
