package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Config{BaseURL: server.URL + "/", Token: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := NewClient(Config{BaseURL: "not a url"}); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}

func TestClientListProjects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		writeJSON(w, http.StatusOK, []dashboard.Project{{ID: "p1", Name: "Web"}})
	})
	projects, err := client.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Web" {
		t.Fatalf("unexpected projects: %#v", projects)
	}
}

func TestClientListFeaturesSendsProjectFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/features" || r.URL.Query().Get("projectId") != "p1" {
			t.Fatalf("unexpected request %s", r.URL.String())
		}
		writeJSON(w, http.StatusOK, []dashboard.Feature{{ID: "f1", Name: "checkout", ProjectID: "p1"}})
	})
	features, err := client.ListFeatures(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list features: %v", err)
	}
	if len(features) != 1 || features[0].ID != "f1" {
		t.Fatalf("unexpected features: %#v", features)
	}
}

func TestClientUpdateTranslationPatchesValue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/translations/t1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["value"] != "Hola" {
			t.Fatalf("unexpected body %#v", body)
		}
		writeJSON(w, http.StatusOK, dashboard.Translation{ID: "t1", Locale: "es", Value: "Hola", KeyID: "k1"})
	})
	tr, err := client.UpdateTranslation(context.Background(), "t1", "Hola")
	if err != nil {
		t.Fatalf("update translation: %v", err)
	}
	if tr.Value != "Hola" {
		t.Fatalf("unexpected translation %#v", tr)
	}
}

func TestClientSearchEncodesParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/translations/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if q.Get("q") != "welcome" || q.Get("page") != "2" || q.Get("limit") != "25" || q.Get("sortOrder") != "asc" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Has("locale") {
			t.Fatalf("empty params must be omitted: %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, dashboard.Page[dashboard.TranslationListItem]{
			Data: []dashboard.TranslationListItem{{ID: "t1", KeyName: "welcome"}},
			Meta: dashboard.PaginationMeta{Total: 26, Page: 2, Limit: 25, TotalPages: 2},
		})
	})
	page, err := client.SearchTranslations(context.Background(), dashboard.SearchParams{
		Q: "welcome", Page: 2, Limit: 25, SortOrder: dashboard.SortAsc,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Meta.TotalPages != 2 || len(page.Data) != 1 {
		t.Fatalf("unexpected page %#v", page)
	}
}

func TestClientBulkUploadSendsMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("featureId") != "f1" {
			t.Fatalf("missing feature id: %s", r.URL.RawQuery)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "upload.csv" || !strings.HasPrefix(string(data), "key,en") {
			t.Fatalf("unexpected upload %s %q", header.Filename, data)
		}
		writeJSON(w, http.StatusOK, dashboard.BulkUploadResult{Created: 2, Skipped: 1})
	})
	result, err := client.BulkUpload(context.Background(), "f1", "upload.csv", strings.NewReader("key,en\nhello,Hello\n"))
	if err != nil {
		t.Fatalf("bulk upload: %v", err)
	}
	if result.Created != 2 || result.Skipped != 1 {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestClientMapsErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "Translation already exists"})
	})
	_, err := client.CreateTranslation(context.Background(), dashboard.CreateTranslationInput{KeyID: "k1", Locale: "es"})
	var apiErr *dashboard.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "Translation already exists" {
		t.Fatalf("unexpected api error %#v", apiErr)
	}
	if got := dashboard.ErrorMessage(err, "fallback"); got != "Translation already exists" {
		t.Fatalf("unexpected display message %q", got)
	}
}

func TestErrorMessageJoinsValidationList(t *testing.T) {
	got := errorMessage([]byte(`{"message":["name must not be empty","locale is invalid"]}`))
	if got != "name must not be empty; locale is invalid" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := errorMessage([]byte(`<html>`)); got != "" {
		t.Fatalf("expected empty message for non-json body, got %q", got)
	}
}

func TestClientDeleteEscapesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.EscapedPath() != "/keys/a%2Fb" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.EscapedPath())
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := client.DeleteKey(context.Background(), "a/b"); err != nil {
		t.Fatalf("delete key: %v", err)
	}
}
