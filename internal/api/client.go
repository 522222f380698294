package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dosewatch/dosewatch/internal/models"
)

// Client is a thin read-only JSON client for the prescription backend.
// The backend owns all persistent state; a failed fetch returns an error
// and empty results, never partial data.
type Client struct {
	baseURL  string
	token    string
	deviceID string
	http     *http.Client
}

func New(baseURL, token string) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", baseURL, err)
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// SetDeviceID attaches the installation identifier sent with every
// request, so the backend can tell devices apart.
func (c *Client) SetDeviceID(id string) {
	c.deviceID = id
}

// GetPrescriptions fetches the caller's prescriptions.
func (c *Client) GetPrescriptions() ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	if err := c.get("/v1/prescriptions", &prescriptions); err != nil {
		return nil, fmt.Errorf("failed to fetch prescriptions: %w", err)
	}
	return prescriptions, nil
}

// GetSchedules fetches all dose schedules across the caller's prescriptions.
func (c *Client) GetSchedules() ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := c.get("/v1/schedules", &schedules); err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	// Absent intervals stay zero and fall back to daily in the evaluator.
	for i := range schedules {
		if schedules[i].Repeat == models.RepeatEveryXDays && schedules[i].IntervalDays > 0 {
			schedules[i].IntervalDays = models.ClampInterval(schedules[i].IntervalDays)
		}
	}
	return schedules, nil
}

// GetMedicineNames fetches the medicine id to display name mapping.
func (c *Client) GetMedicineNames() (map[string]string, error) {
	names := make(map[string]string)
	if err := c.get("/v1/medicines/names", &names); err != nil {
		return nil, fmt.Errorf("failed to fetch medicine names: %w", err)
	}
	return names, nil
}

// Ping checks backend reachability without pulling data.
func (c *Client) Ping() error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/health", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", res.StatusCode)
	}
	return nil
}

func (c *Client) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("request failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.deviceID != "" {
		req.Header.Set("X-Dosewatch-Device", c.deviceID)
	}
}
