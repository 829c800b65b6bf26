package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu      sync.RWMutex
	token   string
	baseURL string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter]
// for the server at adapterCfg.Address.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	h := &httpServerAdapter{
		client: utils.NewHTTPClient(adapterCfg.RequestTimeout),
		logger: logger,
	}
	if err := h.SetBaseURL(adapterCfg.Address); err != nil {
		return nil, err
	}
	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("address must include a host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetBaseURL(raw string) error {
	baseURL, err := normalizeBaseURL(raw)
	if err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.baseURL = baseURL
	h.client.SetBaseURL(baseURL)
	return nil
}

func (h *httpServerAdapter) BaseURL() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.baseURL
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ── auth ──

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := h.do(h.request(ctx).SetBody(req).SetResult(&out), http.MethodPost, "/api/register")
	return out, err
}

func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := h.do(h.request(ctx).SetBody(creds).SetResult(&out), http.MethodPost, "/api/login")
	return out, err
}

func (h *httpServerAdapter) OAuthSignIn(ctx context.Context, provider models.OAuthProvider, accessToken string) (models.AuthResponse, error) {
	var out models.AuthResponse
	req := h.request(ctx).
		SetPathParam("provider", string(provider)).
		SetBody(models.OAuthMobileRequest{Token: accessToken}).
		SetResult(&out)
	err := h.do(req, http.MethodPost, "/api/auth/{provider}-mobile")
	return out, err
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := h.do(h.authedRequest(ctx).SetResult(&out), http.MethodGet, "/api/me")
	return out, err
}

// ── locations ──

func (h *httpServerAdapter) ListLocations(ctx context.Context, page models.Page) (models.ListResponse[models.Location], error) {
	var out models.ListResponse[models.Location]
	req := h.authedRequest(ctx).SetQueryParams(pageParams(page)).SetResult(&out)
	err := h.do(req, http.MethodGet, "/api/locations")
	return out, err
}

func (h *httpServerAdapter) LocationTree(ctx context.Context) (models.LocationTree, error) {
	var out models.LocationTree
	err := h.do(h.authedRequest(ctx).SetResult(&out), http.MethodGet, "/api/locations/tree")
	return out, err
}

func (h *httpServerAdapter) GetLocation(ctx context.Context, id int64) (models.Location, error) {
	var out models.Location
	err := h.do(h.byID(ctx, id).SetResult(&out), http.MethodGet, "/api/locations/{id}")
	return out, err
}

func (h *httpServerAdapter) CreateLocation(ctx context.Context, in models.LocationInput) (models.Location, error) {
	var out models.Location
	err := h.do(h.authedRequest(ctx).SetBody(in).SetResult(&out), http.MethodPost, "/api/locations")
	return out, err
}

func (h *httpServerAdapter) UpdateLocation(ctx context.Context, id int64, in models.LocationInput) (models.Location, error) {
	var out models.Location
	err := h.do(h.byID(ctx, id).SetBody(in).SetResult(&out), http.MethodPatch, "/api/locations/{id}")
	return out, err
}

func (h *httpServerAdapter) DeleteLocation(ctx context.Context, id int64) error {
	return h.do(h.byID(ctx, id), http.MethodDelete, "/api/locations/{id}")
}

// ── boxes ──

func (h *httpServerAdapter) ListBoxes(ctx context.Context, filter models.BoxFilter) (models.ListResponse[models.Box], error) {
	params := pageParams(filter.Page)
	if filter.LocationID != nil {
		params["locationId"] = strconv.FormatInt(*filter.LocationID, 10)
	}

	var out models.ListResponse[models.Box]
	err := h.do(h.authedRequest(ctx).SetQueryParams(params).SetResult(&out), http.MethodGet, "/api/boxes")
	return out, err
}

func (h *httpServerAdapter) GetBox(ctx context.Context, id int64) (models.Box, error) {
	var out models.Box
	err := h.do(h.byID(ctx, id).SetResult(&out), http.MethodGet, "/api/boxes/{id}")
	return out, err
}

func (h *httpServerAdapter) CreateBox(ctx context.Context, in models.BoxInput) (models.Box, error) {
	var out models.Box
	err := h.do(h.authedRequest(ctx).SetBody(in).SetResult(&out), http.MethodPost, "/api/boxes")
	return out, err
}

func (h *httpServerAdapter) UpdateBox(ctx context.Context, id int64, in models.BoxInput) (models.Box, error) {
	var out models.Box
	err := h.do(h.byID(ctx, id).SetBody(in).SetResult(&out), http.MethodPatch, "/api/boxes/{id}")
	return out, err
}

func (h *httpServerAdapter) DeleteBox(ctx context.Context, id int64) error {
	return h.do(h.byID(ctx, id), http.MethodDelete, "/api/boxes/{id}")
}

// ── items ──

func (h *httpServerAdapter) ListItems(ctx context.Context, filter models.ItemFilter) (models.ListResponse[models.Item], error) {
	params := pageParams(filter.Page)
	if filter.BoxID != nil {
		params["boxId"] = strconv.FormatInt(*filter.BoxID, 10)
	}
	if filter.Orphaned {
		params["orphaned"] = "true"
	}
	if filter.Category != "" {
		params["category"] = filter.Category
	}
	if filter.Query != "" {
		params["q"] = filter.Query
	}

	var out models.ListResponse[models.Item]
	err := h.do(h.authedRequest(ctx).SetQueryParams(params).SetResult(&out), http.MethodGet, "/api/items")
	return out, err
}

func (h *httpServerAdapter) GetItem(ctx context.Context, id int64) (models.Item, error) {
	var out models.Item
	err := h.do(h.byID(ctx, id).SetResult(&out), http.MethodGet, "/api/items/{id}")
	return out, err
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, in models.ItemInput) (models.Item, error) {
	var out models.Item
	err := h.do(h.authedRequest(ctx).SetBody(in).SetResult(&out), http.MethodPost, "/api/items")
	return out, err
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, id int64, in models.ItemInput) (models.Item, error) {
	var out models.Item
	err := h.do(h.byID(ctx, id).SetBody(in).SetResult(&out), http.MethodPatch, "/api/items/{id}")
	return out, err
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, id int64) error {
	return h.do(h.byID(ctx, id), http.MethodDelete, "/api/items/{id}")
}

// ── the rest ──

func (h *httpServerAdapter) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := h.do(h.authedRequest(ctx).SetResult(&out), http.MethodGet, "/api/categories")
	return out, err
}

func (h *httpServerAdapter) ListNotifications(ctx context.Context, unreadOnly bool, page models.Page) (models.ListResponse[models.Notification], error) {
	params := pageParams(page)
	if unreadOnly {
		params["unread"] = "true"
	}

	var out models.ListResponse[models.Notification]
	err := h.do(h.authedRequest(ctx).SetQueryParams(params).SetResult(&out), http.MethodGet, "/api/notifications")
	return out, err
}

func (h *httpServerAdapter) UnreadCount(ctx context.Context) (int, error) {
	var out models.UnreadCount
	err := h.do(h.authedRequest(ctx).SetResult(&out), http.MethodGet, "/api/notifications/unread-count")
	return out.Count, err
}

func (h *httpServerAdapter) MarkNotificationRead(ctx context.Context, id int64) (models.Notification, error) {
	var out models.Notification
	err := h.do(h.byID(ctx, id).SetResult(&out), http.MethodPatch, "/api/notifications/{id}/read")
	return out, err
}

func (h *httpServerAdapter) ListComments(ctx context.Context, ref models.ResourceRef, page models.Page) (models.ListResponse[models.Comment], error) {
	var out models.ListResponse[models.Comment]
	req := h.authedRequest(ctx).
		SetPathParams(map[string]string{
			"kind": ref.Kind.String(),
			"id":   strconv.FormatInt(ref.ID, 10),
		}).
		SetQueryParams(pageParams(page)).
		SetResult(&out)
	err := h.do(req, http.MethodGet, "/api/comments/{kind}/{id}")
	return out, err
}

func (h *httpServerAdapter) CreateComment(ctx context.Context, in models.CommentInput) (models.Comment, error) {
	var out models.Comment
	err := h.do(h.authedRequest(ctx).SetBody(in).SetResult(&out), http.MethodPost, "/api/comments")
	return out, err
}

func (h *httpServerAdapter) ListActivities(ctx context.Context, filter models.ActivityFilter) (models.ListResponse[models.Activity], error) {
	params := pageParams(filter.Page)
	if filter.EntityType != nil {
		params["entityType"] = filter.EntityType.String()
	}
	if filter.EntityID != nil {
		params["entityId"] = strconv.FormatInt(*filter.EntityID, 10)
	}
	if filter.UserID != nil {
		params["userId"] = strconv.FormatInt(*filter.UserID, 10)
	}
	if filter.Action != nil {
		params["action"] = string(*filter.Action)
	}

	var out models.ListResponse[models.Activity]
	err := h.do(h.authedRequest(ctx).SetQueryParams(params).SetResult(&out), http.MethodGet, "/api/activities")
	return out, err
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var out models.AppBuildInfo
	err := h.do(h.request(ctx).SetResult(&out), http.MethodGet, "/api/version")
	return out, err
}

// ── plumbing ──

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (h *httpServerAdapter) byID(ctx context.Context, id int64) *resty.Request {
	return h.authedRequest(ctx).SetPathParam("id", strconv.FormatInt(id, 10))
}

func (h *httpServerAdapter) do(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Err(err).Str("func", "httpServerAdapter.do").Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %s %s: %w", ErrUnreachable, method, path, err)
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "httpServerAdapter.do").
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode()).
			Msg("server returned an error")
		return err
	}
	return nil
}

func pageParams(page models.Page) map[string]string {
	params := make(map[string]string, 2)
	if page.Limit > 0 {
		params["limit"] = strconv.Itoa(page.Limit)
	}
	if page.Offset > 0 {
		params["offset"] = strconv.Itoa(page.Offset)
	}
	return params
}
