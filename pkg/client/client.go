// Package client talks to the staybooking HTTP API and keeps the session
// cookie between calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Place struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     int      `json:"checkIn"`
	CheckOut    int      `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       float64  `json:"price"`
}

// PlaceInput is the listing form. ID is only read on update.
type PlaceInput struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	AddedPhotos []string `json:"addedPhotos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     int      `json:"checkIn"`
	CheckOut    int      `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       float64  `json:"price"`
}

type BookingInput struct {
	Place          string    `json:"place"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Price          float64   `json:"price"`
}

// Booking holds PlaceID always and Place only when the API expanded it.
type Booking struct {
	ID             string
	PlaceID        string
	Place          *Place
	User           string
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Name           string
	Phone          string
	Price          float64
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             string          `json:"id"`
		Place          json.RawMessage `json:"place"`
		User           string          `json:"user"`
		CheckIn        time.Time       `json:"checkIn"`
		CheckOut       time.Time       `json:"checkOut"`
		NumberOfGuests int             `json:"numberOfGuests"`
		Name           string          `json:"name"`
		Phone          string          `json:"phone"`
		Price          float64         `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Booking{
		ID:             raw.ID,
		User:           raw.User,
		CheckIn:        raw.CheckIn,
		CheckOut:       raw.CheckOut,
		NumberOfGuests: raw.NumberOfGuests,
		Name:           raw.Name,
		Phone:          raw.Phone,
		Price:          raw.Price,
	}

	place := bytes.TrimSpace(raw.Place)
	switch {
	case len(place) == 0 || bytes.Equal(place, []byte("null")):
	case place[0] == '"':
		return json.Unmarshal(place, &b.PlaceID)
	default:
		var p Place
		if err := json.Unmarshal(place, &p); err != nil {
			return err
		}
		b.Place = &p
		b.PlaceID = p.ID
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithTransport swaps the round tripper, e.g. for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// New returns a client rooted at baseURL, for example http://localhost:4000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var out User
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out User
	in := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns nil, nil when the client holds no session.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out *User
	if err := c.doJSON(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) UploadByLink(ctx context.Context, link string) (string, error) {
	var out string
	err := c.doJSON(ctx, http.MethodPost, "/upload-by-link", map[string]string{"link": link}, &out)
	return out, err
}

// Upload sends files under the "photos" field, keyed by file name.
func (c *Client) Upload(ctx context.Context, files map[string]io.Reader) ([]string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for name, r := range files {
		fw, err := mw.CreateFormFile("photos", name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(fw, r); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out []string
	if err := c.do(ctx, http.MethodPost, "/upload", body, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePlace(ctx context.Context, in PlaceInput) (*Place, error) {
	var out Place
	if err := c.doJSON(ctx, http.MethodPost, "/places", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePlace(ctx context.Context, in PlaceInput) error {
	return c.doJSON(ctx, http.MethodPut, "/places", in, nil)
}

func (c *Client) Place(ctx context.Context, id string) (*Place, error) {
	var out Place
	if err := c.doJSON(ctx, http.MethodGet, "/places/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Places(ctx context.Context) ([]Place, error) {
	var out []Place
	err := c.doJSON(ctx, http.MethodGet, "/places", nil, &out)
	return out, err
}

func (c *Client) UserPlaces(ctx context.Context) ([]Place, error) {
	var out []Place
	err := c.doJSON(ctx, http.MethodGet, "/user-places", nil, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, in BookingInput) (*Booking, error) {
	var out Booking
	if err := c.doJSON(ctx, http.MethodPost, "/bookings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	err := c.doJSON(ctx, http.MethodGet, "/bookings", nil, &out)
	return out, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
