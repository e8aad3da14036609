package dashboard

import (
	"bytes"
	"context"
	"errors"
)

// ImportPreviewRows is how many rows the import page shows before upload.
const ImportPreviewRows = 10

// ProjectView is the detail page of one project.
type ProjectView struct {
	Project   Project         `json:"project"`
	Selected  bool            `json:"selected"`
	Features  []Feature       `json:"features"`
	Languages []Language      `json:"languages"`
	Overall   string          `json:"overall"`
	ByLocale  []CompletionRow `json:"byLocale"`
	Missing   int             `json:"missing"`
}

// ProjectPayload loads project id, or the viewer's project when id is empty.
func (c *Controller) ProjectPayload(ctx context.Context, viewer ViewerContext, id string) (ProjectView, error) {
	if c.service == nil {
		return ProjectView{}, ErrMissingBackend
	}
	if id == "" {
		id = c.projectFor(viewer)
	}
	if id == "" {
		return ProjectView{}, ErrProjectRequired
	}
	project, err := c.service.Project(ctx, id)
	if err != nil {
		return ProjectView{}, err
	}
	view := ProjectView{Project: project, Selected: c.service.SelectedProject() == id}
	if view.Features, err = c.service.Features(ctx, id); err != nil {
		return ProjectView{}, err
	}
	if view.Languages, err = c.service.Languages(ctx, id); err != nil {
		return ProjectView{}, err
	}
	stats, err := c.service.Statistics(ctx, StatisticsFilter{ProjectID: id})
	if err != nil {
		return ProjectView{}, err
	}
	summary := BuildDashboardView(stats, c.numbers, c.now())
	view.Overall = FormatPercentage(stats.OverallCompletionPercentage)
	view.ByLocale = summary.ByLocale
	view.Missing = len(stats.MissingTranslations)
	return view, nil
}

// FeatureView is the key list of one feature.
type FeatureView struct {
	Feature    Feature `json:"feature"`
	Keys       []Key   `json:"keys"`
	Completion string  `json:"completion"`
}

// FeaturePayload loads feature id with its keys.
func (c *Controller) FeaturePayload(ctx context.Context, id string) (FeatureView, error) {
	if c.service == nil {
		return FeatureView{}, ErrMissingBackend
	}
	if id == "" {
		return FeatureView{}, &ValidationError{Form: "feature", Reason: "feature id is required"}
	}
	feature, err := c.service.Feature(ctx, id)
	if err != nil {
		return FeatureView{}, err
	}
	keys, err := c.service.Keys(ctx, id)
	if err != nil {
		return FeatureView{}, err
	}
	stats, err := c.service.Statistics(ctx, StatisticsFilter{ProjectID: feature.ProjectID, FeatureID: id})
	if err != nil {
		return FeatureView{}, err
	}
	return FeatureView{
		Feature:    feature,
		Keys:       keys,
		Completion: FormatPercentage(stats.OverallCompletionPercentage),
	}, nil
}

// FocusPageView is the focus page: a start form, or the running session
// with the translation memory of its current key.
type FocusPageView struct {
	Languages []Language    `json:"languages"`
	Features  []Feature     `json:"features"`
	Session   *FocusSummary `json:"session,omitempty"`
	Memory    []Translation `json:"memory"`
	Expired   bool          `json:"expired,omitempty"`
}

// FocusPayload loads the session with sessionID. An unknown session renders
// the start form flagged as expired.
func (c *Controller) FocusPayload(ctx context.Context, viewer ViewerContext, sessionID string) (FocusPageView, error) {
	if c.service == nil {
		return FocusPageView{}, ErrMissingBackend
	}
	view := FocusPageView{Memory: []Translation{}}
	if sessionID != "" {
		summary, err := c.service.FocusState(sessionID)
		switch {
		case errors.Is(err, ErrFocusNotFound):
			view.Expired = true
		case err != nil:
			return FocusPageView{}, err
		default:
			view.Session = &summary
			if view.Memory, err = c.service.FocusMemory(ctx, sessionID); err != nil {
				return FocusPageView{}, err
			}
			return view, nil
		}
	}
	projectID := c.projectFor(viewer)
	languages, err := c.service.ActiveLanguages(ctx, projectID)
	if err != nil {
		return FocusPageView{}, err
	}
	view.Languages = languages
	if view.Features, err = c.service.Features(ctx, projectID); err != nil {
		return FocusPageView{}, err
	}
	return view, nil
}

// ImportUpload is a CSV posted to the import page. Mapping renames original
// headers. Commit uploads the file; otherwise only a preview is built.
type ImportUpload struct {
	ProjectID string
	FeatureID string
	Filename  string
	Content   []byte
	Mapping   map[string]string
	Commit    bool
}

// ImportColumnView is one column of the import preview with the name the
// operator is offered for it.
type ImportColumnView struct {
	Original string `json:"original"`
	Header   string `json:"header"`
	Suggest  string `json:"suggest"`
	Kept     bool   `json:"kept"`
	Reason   string `json:"reason,omitempty"`
}

// ImportPreviewView is the rename step of the import page.
type ImportPreviewView struct {
	Filename string             `json:"filename"`
	Content  string             `json:"content"`
	Columns  []ImportColumnView `json:"columns"`
	Rows     [][]string         `json:"rows"`
	Total    int                `json:"total"`
	Kept     int                `json:"kept"`
}

// ImportView is the import page.
type ImportView struct {
	ProjectID string             `json:"projectId,omitempty"`
	FeatureID string             `json:"featureId,omitempty"`
	Languages []Language         `json:"languages"`
	Features  []Feature          `json:"features"`
	Preview   *ImportPreviewView `json:"preview,omitempty"`
	Result    *BulkUploadResult  `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// ImportPayload builds the import page. A nil upload renders the file form.
// Parse and upload failures are reported on the page rather than returned.
func (c *Controller) ImportPayload(ctx context.Context, viewer ViewerContext, upload *ImportUpload) (ImportView, error) {
	if c.service == nil {
		return ImportView{}, ErrMissingBackend
	}
	projectID := c.projectFor(viewer)
	if upload != nil && upload.ProjectID != "" {
		projectID = upload.ProjectID
	}
	view := ImportView{ProjectID: projectID}
	var err error
	if view.Languages, err = c.service.Languages(ctx, projectID); err != nil {
		return ImportView{}, err
	}
	if view.Features, err = c.service.Features(ctx, projectID); err != nil {
		return ImportView{}, err
	}
	if upload == nil {
		return view, nil
	}
	view.FeatureID = upload.FeatureID

	doc, err := ParseCSV(bytes.NewReader(upload.Content))
	if err != nil {
		view.Error = importErrorMessage(err)
		return view, nil
	}
	session := NewImportSession(doc)
	session.ApplyMapping(upload.Mapping)

	if upload.Commit {
		ctx = ContextWithActivity(ctx, ActivityContext{UserID: viewer.UserID})
		result, err := c.service.ImportCSV(ctx, ImportRequest{
			ProjectID: projectID,
			FeatureID: upload.FeatureID,
			Filename:  upload.Filename,
			Session:   session,
		})
		if err == nil {
			view.Result = &result
			return view, nil
		}
		view.Error = importErrorMessage(err)
	}

	columns, err := c.service.ImportColumns(ctx, projectID, session)
	if err != nil {
		return ImportView{}, err
	}
	suggested := session.SuggestMapping(view.Languages)
	preview := session.Preview(ImportPreviewRows)
	view.Preview = &ImportPreviewView{
		Filename: upload.Filename,
		Content:  string(upload.Content),
		Columns:  make([]ImportColumnView, len(columns)),
		Rows:     preview.Rows,
		Total:    preview.Total,
	}
	for i, col := range columns {
		suggest := col.Header
		if name, ok := suggested[col.Index]; ok && !col.Kept {
			suggest = name
		}
		view.Preview.Columns[i] = ImportColumnView{
			Original: col.Original,
			Header:   col.Header,
			Suggest:  suggest,
			Kept:     col.Kept,
			Reason:   col.Reason,
		}
		if col.Kept {
			view.Preview.Kept++
		}
	}
	return view, nil
}

func importErrorMessage(err error) string {
	if msg := ErrorMessage(err, ""); msg != "" {
		return msg
	}
	return err.Error()
}
