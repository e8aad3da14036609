package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-l10n-dashboard/pkg/apiclient"
)

func newTestServer(t *testing.T) (*httptest.Server, *apiclient.MockClient, *dashboard.Service) {
	t.Helper()
	backend := apiclient.NewMockClient(apiclient.MockData{
		Projects: []dashboard.Project{{ID: "p1", Name: "Web", IsActive: true}},
		Features: []dashboard.Feature{{ID: "f1", Name: "checkout", ProjectID: "p1"}},
		Keys: []dashboard.Key{
			{ID: "k1", Key: "checkout.title", FeatureID: "f1"},
			{ID: "k2", Key: "checkout.pay", FeatureID: "f1"},
		},
		Languages: []dashboard.Language{
			{ID: "l1", Locale: "en", Name: "English", IsActive: true, ProjectID: "p1"},
			{ID: "l2", Locale: "es", Name: "Spanish", IsActive: true, ProjectID: "p1"},
		},
		Translations: []dashboard.Translation{
			{ID: "t1", KeyID: "k1", Locale: "en", Value: "Checkout"},
		},
	})
	service := dashboard.NewService(dashboard.Options{Backend: backend})
	require.NoError(t, service.SelectProject(context.Background(), "p1"))

	mux := http.NewServeMux()
	handlers := &httpapi.Handlers{Executor: httpapi.NewExecutor(service, nil)}
	handlers.Mount(mux, "/api")
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, backend, service
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestListFeaturesUsesSelectedProject(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/features", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	features := decodeBody[[]dashboard.Feature](t, resp)
	require.Len(t, features, 1)
	require.NotNil(t, features[0].TotalKeys)
	assert.Equal(t, 2, *features[0].TotalKeys)
}

func TestCreateProjectValidationReturns422(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/projects", map[string]string{"name": " "})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody[httpapi.ErrorResponse](t, resp)
	assert.NotEmpty(t, body.Error)
}

func TestCreateTranslationConflictKeepsServerMessage(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/translations", map[string]string{
		"keyId": "k1", "locale": "en", "value": "Again",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody[httpapi.ErrorResponse](t, resp)
	assert.Contains(t, body.Error, "already exists")
}

func TestSaveDraftSendsOnlyChangedLocales(t *testing.T) {
	server, backend, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/keys/k1/translations", map[string]any{
		"values": map[string]string{"en": "Checkout", "es": "Pagar", "de": "Kasse"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[httpapi.DraftSaveResult](t, resp)
	assert.Equal(t, []string{"es"}, result.Locales)
	require.Len(t, result.Saved, 1)

	list, err := backend.ListTranslations(context.Background(), "k1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSaveDraftWithoutChanges(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/keys/k1/translations", map[string]any{
		"values": map[string]string{"en": "Checkout"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[httpapi.DraftSaveResult](t, resp)
	assert.Equal(t, httpapi.NoChangesMessage, result.Message)
	assert.Empty(t, result.Saved)
}

func multipartUpload(t *testing.T, url, csv string, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	part, err := writer.CreateFormFile("file", "strings.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(url, writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestUploadAppliesHeaderMapping(t *testing.T) {
	server, backend, _ := newTestServer(t)

	csv := "key,English,notes\ncheckout.pay,Pay now,ignored\n"
	resp := multipartUpload(t, server.URL+"/api/translations/import", csv, map[string]string{
		"featureId":    "f1",
		"map[English]": "en",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[dashboard.BulkUploadResult](t, resp)
	assert.Equal(t, 1, result.Created)

	list, err := backend.ListTranslations(context.Background(), "k2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pay now", list[0].Value)
}

func TestUploadReturnsCountsForMultipartForms(t *testing.T) {
	server, _, _ := newTestServer(t)

	csv := "key,en,es\ncheckout.title,Checkout v2,Pagar\ncheckout.pay,,Pagar ahora\n"
	resp := multipartUpload(t, server.URL+"/api/translations/import", csv, map[string]string{"featureId": "f1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	result := decodeBody[dashboard.BulkUploadResult](t, resp)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Processed 2 rows", result.Message)
}

func TestUploadWithoutRecognizedColumns(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := multipartUpload(t, server.URL+"/api/translations/import", "key,notes\na,b\n", map[string]string{"featureId": "f1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[httpapi.ErrorResponse](t, resp)
	assert.Equal(t, dashboard.UploadFailedMessage, body.Error)
}

func TestPreviewUploadSuggestsMapping(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := multipartUpload(t, server.URL+"/api/translations/import/preview", "key,Spanish\na,b\n", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	preview := decodeBody[struct {
		Suggestions map[string]string `json:"suggestions"`
	}](t, resp)
	assert.Equal(t, "es", preview.Suggestions["1"])
}

func TestExportCSV(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/translations/export?locale=en", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dashboard.CSVContentType, resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), `attachment; filename="translations_filtered_`))
}

func TestFocusFlow(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/focus", map[string]string{"locale": "es"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	started := decodeBody[dashboard.FocusSummary](t, resp)
	require.NotEmpty(t, started.ID)
	require.Equal(t, 2, started.Total)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/focus/"+started.ID, map[string]string{"action": "skip"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	step := decodeBody[dashboard.FocusSummary](t, resp)
	assert.Equal(t, 1, step.Index)
	assert.Equal(t, 1, step.Skipped)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/focus/"+started.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/focus/"+started.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// noRedirect is a client that reports 303s instead of following them.
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func postForm(t *testing.T, target, referer string, form url.Values) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	resp, err := noRedirect.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestFocusPageFormsRedirectToSession(t *testing.T) {
	server, backend, service := newTestServer(t)

	resp := postForm(t, server.URL+"/api/focus", "/l10n/focus", url.Values{"locale": {"es"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/l10n/focus", location.Path)
	id := location.Query().Get("session")
	require.NotEmpty(t, id)

	page := "/l10n/focus?session=" + id
	resp = postForm(t, server.URL+"/api/focus/"+id, page, url.Values{"action": {"submit"}, "value": {"Pagar ahora"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, page, resp.Header.Get("Location"))

	list, err := backend.ListTranslations(context.Background(), "k2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pagar ahora", list[0].Value)

	summary, err := service.FocusState(id)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Submitted)
	assert.Equal(t, 1, summary.Streak)
}

func TestSelectionRoundTrip(t *testing.T) {
	server, _, service := newTestServer(t)

	resp := doJSON(t, http.MethodPut, server.URL+"/api/selection", map[string]string{"projectId": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, service.SelectedProject())
}
