package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

// RemoteClient talks to a catalog service exposing GET components and GET recommendations.
type RemoteClient struct {
	baseURL string
	timeout time.Duration
}

// NewRemoteClient creates a client for baseURL. A zero timeout waits indefinitely.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (r *RemoteClient) Components(ctx context.Context, category models.Category) ([]models.Component, error) {
	return r.get(ctx, "components", url.Values{"category": {string(category)}})
}

func (r *RemoteClient) Recommendations(ctx context.Context, category models.Category, req models.Requirements) ([]models.Component, error) {
	q := RequirementsQuery(req)
	q.Set("category", string(category))
	return r.get(ctx, "recommendations", q)
}

func (r *RemoteClient) get(ctx context.Context, path string, q url.Values) ([]models.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a := fiber.Get(r.baseURL + "/" + path + "?" + q.Encode())
	if r.timeout > 0 {
		a.Timeout(r.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog %s request failed: %w", path, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("catalog %s request failed: status %d", path, code)
	}
	var out []models.Component
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s response: %w", path, err)
	}
	return out, nil
}

// RequirementsQuery encodes the non-zero constraints of req as query parameters named by their query tags.
func RequirementsQuery(req models.Requirements) url.Values {
	q := url.Values{}
	v := reflect.ValueOf(req)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("query")
		if name == "" || v.Field(i).IsZero() {
			continue
		}
		switch f := v.Field(i); f.Kind() {
		case reflect.String:
			q.Set(name, f.String())
		case reflect.Int:
			q.Set(name, strconv.FormatInt(f.Int(), 10))
		case reflect.Float64:
			q.Set(name, strconv.FormatFloat(f.Float(), 'f', -1, 64))
		}
	}
	return q
}
