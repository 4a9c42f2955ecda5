package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
)

// Client talks to the remote booking service over HTTP. It implements the
// form's AvailabilityProvider and Submitter collaborators. Any transport error
// or non-2xx response from Submit is reported as a plain failure; the form
// treats both the same way.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type availabilityResponse struct {
	Date   string   `json:"date"`
	Booked []string `json:"booked"`
}

type submitRequest struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email,omitempty"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Services []string `json:"services"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type servicesResponse struct {
	Groups []domain.ServiceGroup `json:"groups"`
}

// Services fetches the grouped catalog from the booking service.
func (c *Client) Services(ctx context.Context) ([]domain.ServiceGroup, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/services", nil)
	if err != nil {
		return nil, fmt.Errorf("build services request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch services: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("services query failed: %s", respError(resp))
	}

	var payload servicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode services response: %w", err)
	}
	return payload.Groups, nil
}

// BookedSlots returns the labels already booked for the date.
func (c *Client) BookedSlots(ctx context.Context, date time.Time) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/availability?date=%s", c.baseURL, url.QueryEscape(date.Format(domain.DateLayout)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build availability request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch availability: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability query failed: %s", respError(resp))
	}

	var payload availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode availability response: %w", err)
	}
	return payload.Booked, nil
}

// Submit sends the finished draft to the booking service.
func (c *Client) Submit(ctx context.Context, draft domain.Draft) error {
	body, err := json.Marshal(submitRequest{
		Name:     draft.Name,
		Phone:    draft.Phone,
		Email:    draft.Email,
		Date:     draft.Date.Format(domain.DateLayout),
		Time:     draft.Slot,
		Services: draft.Services,
	})
	if err != nil {
		return fmt.Errorf("encode booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/booking", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit booking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("booking rejected: %s", respError(resp))
	}
	return nil
}

func respError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return resp.Status
	}
	var payload errorResponse
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return resp.Status
}
