package httpapi

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

// IsForm reports whether contentType is an HTML form submission.
func IsForm(contentType string) bool {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return media == "application/x-www-form-urlencoded" || media == "multipart/form-data"
}

// IsPageForm reports whether contentType is a plain url-encoded form. Only
// those posts are answered with a redirect back to the page; multipart
// uploads get their result as JSON.
func IsPageForm(contentType string) bool {
	media, _, err := mime.ParseMediaType(contentType)
	return err == nil && media == "application/x-www-form-urlencoded"
}

// RedirectTarget returns referer with the given query values set, or "/"
// when there is no referer.
func RedirectTarget(referer string, set url.Values) string {
	if referer == "" {
		referer = "/"
	}
	if len(set) == 0 {
		return referer
	}
	target, err := url.Parse(referer)
	if err != nil {
		return referer
	}
	query := target.Query()
	for name, values := range set {
		query[name] = values
	}
	target.RawQuery = query.Encode()
	return target.String()
}

// DraftValues splits an editor form into its project and per-locale values.
// Every field other than projectId is a locale.
func DraftValues(form url.Values) (string, map[string]string) {
	values := make(map[string]string, len(form))
	for name, vs := range form {
		if name == "projectId" || len(vs) == 0 {
			continue
		}
		values[name] = vs[0]
	}
	return form.Get("projectId"), values
}

// ParseMultipart reads a multipart body whose boundary is declared in
// contentType.
func ParseMultipart(contentType string, body []byte) (*multipart.Form, error) {
	media, params, err := mime.ParseMediaType(contentType)
	if err != nil || media != "multipart/form-data" || params["boundary"] == "" {
		return nil, &dashboard.ValidationError{Form: "upload", Reason: "expected a multipart form with a csv file"}
	}
	form, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).ReadForm(MaxUploadSize)
	if err != nil {
		return nil, &dashboard.ValidationError{Form: "upload", Reason: "malformed multipart body"}
	}
	return form, nil
}

// UploadFromForm reads the import form: featureId, projectId, the csv file
// and map[<original header>]=<locale> renames. The returned func closes the
// file.
func UploadFromForm(form *multipart.Form) (UploadRequest, func(), error) {
	noop := func() {}
	if form == nil || len(form.File["file"]) == 0 {
		return UploadRequest{}, noop, dashboard.ErrCSVEmpty
	}
	header := form.File["file"][0]
	file, err := header.Open()
	if err != nil {
		return UploadRequest{}, noop, err
	}
	first := func(name string) string {
		if vs := form.Value[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	req := UploadRequest{
		ProjectID: first("projectId"),
		FeatureID: first("featureId"),
		Filename:  header.Filename,
		File:      file,
		Mapping:   formMapping(form.Value),
	}
	return req, func() { _ = file.Close() }, nil
}

func formMapping(values map[string][]string) map[string]string {
	mapping := map[string]string{}
	for name, vs := range values {
		original, ok := strings.CutPrefix(name, "map[")
		if !ok || !strings.HasSuffix(original, "]") || len(vs) == 0 {
			continue
		}
		mapping[strings.TrimSuffix(original, "]")] = vs[0]
	}
	return mapping
}

// ImportStepFromForm reads a post of the import page. The CSV comes from the
// file field on the first step and from the content field once the preview
// has echoed it back. step=import commits the upload.
func ImportStepFromForm(form *multipart.Form) (dashboard.ImportUpload, error) {
	if form == nil {
		return dashboard.ImportUpload{}, dashboard.ErrCSVEmpty
	}
	first := func(name string) string {
		if vs := form.Value[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	upload := dashboard.ImportUpload{
		ProjectID: first("projectId"),
		FeatureID: first("featureId"),
		Filename:  first("filename"),
		Mapping:   formMapping(form.Value),
		Commit:    first("step") == "import",
	}
	if files := form.File["file"]; len(files) > 0 {
		file, err := files[0].Open()
		if err != nil {
			return dashboard.ImportUpload{}, err
		}
		defer file.Close()
		if upload.Content, err = io.ReadAll(io.LimitReader(file, MaxUploadSize)); err != nil {
			return dashboard.ImportUpload{}, err
		}
		upload.Filename = files[0].Filename
		return upload, nil
	}
	upload.Content = []byte(first("content"))
	return upload, nil
}
