// Package apiclient implements the dashboard Backend over the localization
// REST API.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 8 * time.Second

// Config configures the REST client.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
}

// Client talks to the localization API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *resty.Client
}

var _ dashboard.Backend = (*Client)(nil)

// NewClient builds a client for cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("apiclient: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var rc *resty.Client
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetTimeout(timeout).SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &Client{baseURL: base, http: rc}, nil
}

func (c *Client) url(parts ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// send executes req and maps non-success statuses onto *dashboard.APIError.
func send(req *resty.Request, method, target, op string) error {
	resp, err := req.Execute(method, target)
	if err != nil {
		return fmt.Errorf("apiclient: %s: %w", op, err)
	}
	if resp.IsError() || resp.StatusCode() >= 300 {
		return apiError(resp.StatusCode(), resp.Body())
	}
	return nil
}

func apiError(status int, body []byte) *dashboard.APIError {
	return &dashboard.APIError{
		Status:  status,
		Message: errorMessage(body),
		Body:    string(body),
	}
}

// errorMessage extracts the "message" field of an error body. Validation
// errors carry a list of messages which are joined.
func errorMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Message) > 0 {
		var single string
		if err := json.Unmarshal(payload.Message, &single); err == nil {
			return strings.TrimSpace(single)
		}
		var list []string
		if err := json.Unmarshal(payload.Message, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}
	return strings.TrimSpace(payload.Error)
}

func (c *Client) get(ctx context.Context, target string, params map[string]string, out any, op string) error {
	req := c.request(ctx).SetResult(out)
	for k, v := range params {
		if v != "" {
			req.SetQueryParam(k, v)
		}
	}
	return send(req, http.MethodGet, target, op)
}

func (c *Client) write(ctx context.Context, method, target string, body, out any, op string) error {
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	if out != nil {
		req.SetResult(out)
	}
	return send(req, method, target, op)
}

func (c *Client) remove(ctx context.Context, target, op string) error {
	return send(c.request(ctx), http.MethodDelete, target, op)
}

func (c *Client) ListProjects(ctx context.Context) ([]dashboard.Project, error) {
	var out []dashboard.Project
	if err := c.get(ctx, c.url("projects"), nil, &out, "list projects"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (dashboard.Project, error) {
	var out dashboard.Project
	err := c.get(ctx, c.url("projects", id), nil, &out, "get project")
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, input dashboard.CreateProjectInput) (dashboard.Project, error) {
	var out dashboard.Project
	err := c.write(ctx, http.MethodPost, c.url("projects"), input, &out, "create project")
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, input dashboard.UpdateProjectInput) (dashboard.Project, error) {
	var out dashboard.Project
	err := c.write(ctx, http.MethodPatch, c.url("projects", id), input, &out, "update project")
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.remove(ctx, c.url("projects", id), "delete project")
}

func (c *Client) ListFeatures(ctx context.Context, projectID string) ([]dashboard.Feature, error) {
	var out []dashboard.Feature
	if err := c.get(ctx, c.url("features"), map[string]string{"projectId": projectID}, &out, "list features"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFeature(ctx context.Context, id string) (dashboard.Feature, error) {
	var out dashboard.Feature
	err := c.get(ctx, c.url("features", id), nil, &out, "get feature")
	return out, err
}

func (c *Client) CreateFeature(ctx context.Context, input dashboard.CreateFeatureInput) (dashboard.Feature, error) {
	var out dashboard.Feature
	err := c.write(ctx, http.MethodPost, c.url("features"), input, &out, "create feature")
	return out, err
}

func (c *Client) UpdateFeature(ctx context.Context, id string, input dashboard.UpdateFeatureInput) (dashboard.Feature, error) {
	var out dashboard.Feature
	err := c.write(ctx, http.MethodPatch, c.url("features", id), input, &out, "update feature")
	return out, err
}

func (c *Client) DeleteFeature(ctx context.Context, id string) error {
	return c.remove(ctx, c.url("features", id), "delete feature")
}

func (c *Client) ListKeys(ctx context.Context, featureID string) ([]dashboard.Key, error) {
	var out []dashboard.Key
	if err := c.get(ctx, c.url("keys", "feature", featureID), nil, &out, "list keys"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetKey(ctx context.Context, id string) (dashboard.KeyWithFeature, error) {
	var out dashboard.KeyWithFeature
	err := c.get(ctx, c.url("keys", id), nil, &out, "get key")
	return out, err
}

func (c *Client) CreateKey(ctx context.Context, input dashboard.CreateKeyInput) (dashboard.Key, error) {
	var out dashboard.Key
	err := c.write(ctx, http.MethodPost, c.url("keys"), input, &out, "create key")
	return out, err
}

func (c *Client) UpdateKey(ctx context.Context, id string, input dashboard.UpdateKeyInput) (dashboard.Key, error) {
	var out dashboard.Key
	err := c.write(ctx, http.MethodPatch, c.url("keys", id), input, &out, "update key")
	return out, err
}

func (c *Client) DeleteKey(ctx context.Context, id string) error {
	return c.remove(ctx, c.url("keys", id), "delete key")
}

func (c *Client) ListLanguages(ctx context.Context, projectID string) ([]dashboard.Language, error) {
	var out []dashboard.Language
	if err := c.get(ctx, c.url("languages"), map[string]string{"projectId": projectID}, &out, "list languages"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLanguage(ctx context.Context, input dashboard.CreateLanguageInput) (dashboard.Language, error) {
	var out dashboard.Language
	err := c.write(ctx, http.MethodPost, c.url("languages"), input, &out, "create language")
	return out, err
}

func (c *Client) UpdateLanguage(ctx context.Context, id string, input dashboard.UpdateLanguageInput) (dashboard.Language, error) {
	var out dashboard.Language
	err := c.write(ctx, http.MethodPatch, c.url("languages", id), input, &out, "update language")
	return out, err
}

func (c *Client) DeleteLanguage(ctx context.Context, id string) error {
	return c.remove(ctx, c.url("languages", id), "delete language")
}

func (c *Client) ListTranslations(ctx context.Context, keyID string) ([]dashboard.Translation, error) {
	var out []dashboard.Translation
	if err := c.get(ctx, c.url("translations", "key", keyID), nil, &out, "list translations"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchTranslations(ctx context.Context, params dashboard.SearchParams) (dashboard.Page[dashboard.TranslationListItem], error) {
	var out dashboard.Page[dashboard.TranslationListItem]
	err := c.get(ctx, c.url("translations", "search"), searchQuery(params), &out, "search translations")
	return out, err
}

func searchQuery(p dashboard.SearchParams) map[string]string {
	q := map[string]string{
		"q":         p.Q,
		"locale":    p.Locale,
		"featureId": p.FeatureID,
		"projectId": p.ProjectID,
		"sortBy":    p.SortBy,
		"sortOrder": string(p.SortOrder),
	}
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	return q
}

func (c *Client) CreateTranslation(ctx context.Context, input dashboard.CreateTranslationInput) (dashboard.Translation, error) {
	var out dashboard.Translation
	err := c.write(ctx, http.MethodPost, c.url("translations"), input, &out, "create translation")
	return out, err
}

func (c *Client) UpdateTranslation(ctx context.Context, id, value string) (dashboard.Translation, error) {
	var out dashboard.Translation
	err := c.write(ctx, http.MethodPatch, c.url("translations", id), map[string]string{"value": value}, &out, "update translation")
	return out, err
}

func (c *Client) DeleteTranslation(ctx context.Context, id string) error {
	return c.remove(ctx, c.url("translations", id), "delete translation")
}

func (c *Client) BulkUpsert(ctx context.Context, input dashboard.BulkUpsertInput) ([]dashboard.Translation, error) {
	var out []dashboard.Translation
	if err := c.write(ctx, http.MethodPost, c.url("translations", "bulk-upsert"), input, &out, "bulk upsert"); err != nil {
		return nil, err
	}
	return out, nil
}

// BulkUpload posts file as multipart form field "file".
func (c *Client) BulkUpload(ctx context.Context, featureID, filename string, file io.Reader) (dashboard.BulkUploadResult, error) {
	var out dashboard.BulkUploadResult
	req := c.request(ctx).
		SetQueryParam("featureId", featureID).
		SetFileReader("file", filename, file).
		SetResult(&out)
	err := send(req, http.MethodPost, c.url("translations", "bulk-upload"), "bulk upload")
	return out, err
}

func (c *Client) Statistics(ctx context.Context, filter dashboard.StatisticsFilter) (dashboard.Statistics, error) {
	var out dashboard.Statistics
	err := c.get(ctx, c.url("translations", "statistics"), map[string]string{
		"featureId": filter.FeatureID,
		"projectId": filter.ProjectID,
	}, &out, "statistics")
	return out, err
}

func (c *Client) AITranslate(ctx context.Context, input dashboard.AITranslateInput) (dashboard.AITranslateResult, error) {
	var out dashboard.AITranslateResult
	err := c.write(ctx, http.MethodPost, c.url("translations", "ai-translate"), input, &out, "ai translate")
	return out, err
}

func (c *Client) AITranslateBatch(ctx context.Context, input dashboard.AITranslateBatchInput) (dashboard.AITranslateBatchResult, error) {
	var out dashboard.AITranslateBatchResult
	err := c.write(ctx, http.MethodPost, c.url("translations", "ai-translate-batch"), input, &out, "ai translate batch")
	return out, err
}
