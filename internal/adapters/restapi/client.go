// Package restapi is the HTTP client for the department REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/net/publicsuffix"

	"github.com/jnu-cse/cse-portal/internal/domain/portal"
	apperrors "github.com/jnu-cse/cse-portal/internal/errors"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

var _ ports.PortalAPI = (*Client)(nil)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// Response shapes differ between API versions: bare arrays or {"notices": [...]},
// Mongo "_id" or plain "id", numeric or string ids. These projections normalize them.
const (
	listRootExpr = "notices || events || images || items || bookings || data || @"

	noticeExpr = "{id: to_string(_id || id || ''), topic: topic, description: description, img: img || image, " +
		"author: author, category: category, important: important, date: date || createdAt}"
	eventExpr = "{id: to_string(_id || id || ''), title: title, date: date, type: type, " +
		"description: description}"
	galleryExpr = "{id: to_string(_id || id || ''), title: title, category: category, " +
		"image: image || img || url}"
	bookingExpr = "{id: to_string(_id || id || ''), room: room || classroom || lab || facility, date: date, " +
		"startTime: startTime || time, endTime: endTime, purpose: purpose, bookedBy: bookedBy || name, " +
		"email: email || userEmail, status: status}"
	dashboardExpr = "{totalBookings: totalBookings || total_bookings || `0`, " +
		"activeBookings: activeBookings || active_bookings || `0`, notifications: notifications || `0`}"
)

// Config configures the API client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional
	Logger     *slog.Logger
}

// Client calls the department REST API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient builds a client and validates the normalizing projections.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	for _, expr := range []string{listRootExpr, noticeExpr, eventExpr, galleryExpr, bookingExpr, dashboardExpr} {
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, fmt.Errorf("compile projection %q: %w", expr, err)
		}
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		// The hosted API sets affinity cookies; keep them scoped per registrable domain.
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		hc = &http.Client{Timeout: timeout, Jar: jar}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: base, client: hc, logger: logger.With("component", "restapi")}, nil
}

// ListNotices returns every notice in the order the API sends them.
func (c *Client) ListNotices(ctx context.Context) ([]portal.Notice, error) {
	return getList[portal.Notice](ctx, c, "/api/notices", noticeExpr)
}

// LatestNotices returns the notices featured on the home screen.
func (c *Client) LatestNotices(ctx context.Context) ([]portal.Notice, error) {
	return getList[portal.Notice](ctx, c, "/api/notices/latest", noticeExpr)
}

// GetNotice fetches one notice. A blank id or a 404 yields a not-found error.
func (c *Client) GetNotice(ctx context.Context, id string) (portal.Notice, error) {
	var out portal.Notice
	if strings.TrimSpace(id) == "" {
		return out, apperrors.NotFound("notice not found")
	}
	err := c.getOne(ctx, "/api/notices/"+url.PathEscape(id), noticeExpr, &out)
	return out, err
}

// CreateNotice validates in locally before posting it.
func (c *Client) CreateNotice(ctx context.Context, in portal.NoticeInput) error {
	if err := in.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid notice")
	}
	return c.send(ctx, http.MethodPost, "/api/notices", in)
}

// UpdateNotice validates in locally before replacing notice id.
func (c *Client) UpdateNotice(ctx context.Context, id string, in portal.NoticeInput) error {
	if err := in.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid notice")
	}
	return c.send(ctx, http.MethodPut, "/api/notices/"+url.PathEscape(id), in)
}

// DeleteNotice removes notice id.
func (c *Client) DeleteNotice(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/notices/"+url.PathEscape(id), nil)
}

// ListBookings returns all bookings of one kind.
func (c *Client) ListBookings(ctx context.Context, kind portal.BookingKind) ([]portal.Booking, error) {
	path, err := bookingsPath(kind)
	if err != nil {
		return nil, err
	}
	return getList[portal.Booking](ctx, c, path, bookingExpr)
}

// BookingsByUser returns the bookings of one kind made by email.
func (c *Client) BookingsByUser(ctx context.Context, kind portal.BookingKind, email string) ([]portal.Booking, error) {
	path, err := bookingsPath(kind)
	if err != nil {
		return nil, err
	}
	return getList[portal.Booking](ctx, c, path+"/user/"+url.PathEscape(email), bookingExpr)
}

// CreateBooking submits b to the classroom or lab booking endpoint.
func (c *Client) CreateBooking(ctx context.Context, kind portal.BookingKind, b portal.Booking) error {
	path, err := bookingsPath(kind)
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, path, b)
}

// UserDashboard returns the booking summary for email.
func (c *Client) UserDashboard(ctx context.Context, email string) (portal.Dashboard, error) {
	var out portal.Dashboard
	err := c.getOne(ctx, "/api/user-dashboard/"+url.PathEscape(email), dashboardExpr, &out)
	return out, err
}

// ListGallery lists gallery items; an empty or "All" category lists everything.
func (c *Client) ListGallery(ctx context.Context, category string) ([]portal.GalleryItem, error) {
	path := "/api/gallery"
	if category != "" && category != "All" {
		path += "/category/" + url.PathEscape(category)
	}
	return getList[portal.GalleryItem](ctx, c, path, galleryExpr)
}

// ListEvents returns the department events.
func (c *Client) ListEvents(ctx context.Context) ([]portal.Event, error) {
	return getList[portal.Event](ctx, c, "/api/events", eventExpr)
}

func bookingsPath(kind portal.BookingKind) (string, error) {
	switch kind {
	case portal.BookingClassroom:
		return "/api/classroom-bookings", nil
	case portal.BookingLab:
		return "/api/lab-bookings", nil
	default:
		return "", apperrors.ValidationField("facility", fmt.Sprintf("unknown booking kind %q", kind))
	}
}

func getList[T any](ctx context.Context, c *Client, path, recordExpr string) ([]T, error) {
	raw, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	root, err := jmespath.Search(listRootExpr, raw)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "normalize %s", path)
	}
	if _, ok := root.([]any); !ok {
		return []T{}, nil
	}
	projected, err := jmespath.Search("[*]."+recordExpr, root)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "normalize %s", path)
	}
	out := []T{}
	if err := remarshal(projected, &out); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "decode %s", path)
	}
	return out, nil
}

func (c *Client) getOne(ctx context.Context, path, recordExpr string, dst any) error {
	raw, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	// Single records are sometimes wrapped as {"notice": {...}}.
	if m, ok := raw.(map[string]any); ok && len(m) == 1 {
		for _, v := range m {
			if inner, isObj := v.(map[string]any); isObj {
				raw = inner
			}
		}
	}
	projected, err := jmespath.Search(recordExpr, raw)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "normalize %s", path)
	}
	if err := remarshal(projected, dst); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "decode %s", path)
	}
	return nil
}

func remarshal(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func (c *Client) fetch(ctx context.Context, path string) (any, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var raw any
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "decode %s", path)
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", path, err)
		}
		body = bytes.NewReader(b)
	}
	_, err := c.do(ctx, method, path, body)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "portal API request timed out")
		}
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "%s %s", method, path)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close api response body", "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "read %s", path)
	}
	c.logger.DebugContext(ctx, "api call",
		"method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NotFound("not found")
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, apperrors.Validation(apiMessage(data, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.Upstreamf("%s %s: %s", method, path, resp.Status)
	}
	return data, nil
}

// apiMessage extracts {"message": "..."} or {"error": "..."} from an error body.
func apiMessage(body []byte, fallback string) string {
	var raw any
	if json.Unmarshal(body, &raw) != nil {
		return fallback
	}
	msg, err := jmespath.Search("message || error", raw)
	if s, ok := msg.(string); err == nil && ok && s != "" {
		return s
	}
	return fallback
}
