package dashboard

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// KeyColumn is the canonical name of the key column in uploads.
const KeyColumn = "key"

// DefaultPreviewRows is how many rows the import preview shows.
const DefaultPreviewRows = 50

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVDocument is a parsed CSV file. Rows are positional and padded to the
// header width so duplicate header names stay addressable.
type CSVDocument struct {
	Headers []string
	Rows    [][]string
}

// Records returns each row keyed by original header name. When a header name
// repeats, the right-most cell wins.
func (d *CSVDocument) Records() []map[string]string {
	if d == nil {
		return nil
	}
	out := make([]map[string]string, len(d.Rows))
	for i, row := range d.Rows {
		record := make(map[string]string, len(d.Headers))
		for idx, header := range d.Headers {
			record[header] = row[idx]
		}
		out[i] = record
	}
	return out
}

// ParseCSV reads a CSV file with a header row. Blank lines and lines made only
// of empty cells are skipped. Short rows are padded, long rows truncated to the
// header width.
func ParseCSV(r io.Reader) (*CSVDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dashboard: read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrCSVEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: parse csv header: %w", err)
	}
	if blankRecord(header) {
		return nil, ErrCSVEmpty
	}

	doc := &CSVDocument{Headers: append([]string(nil), header...)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dashboard: parse csv: %w", err)
		}
		if blankRecord(record) {
			continue
		}
		row := make([]string, len(doc.Headers))
		copy(row, record)
		doc.Rows = append(doc.Rows, row)
	}
	return doc, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ValidColumns is the set of column names accepted by the bulk upload
// endpoint for one project.
type ValidColumns struct {
	locales map[string]string
}

// ValidColumnsFor returns {"key"} plus the locale codes of languages that
// belong to projectID. Languages without a project id are treated as shared.
func ValidColumnsFor(languages []Language, projectID string) ValidColumns {
	valid := ValidColumns{locales: map[string]string{}}
	for _, lang := range languages {
		if projectID != "" && lang.ProjectID != "" && lang.ProjectID != projectID {
			continue
		}
		locale := strings.TrimSpace(lang.Locale)
		if locale == "" {
			continue
		}
		valid.locales[strings.ToLower(locale)] = locale
	}
	return valid
}

// Resolve returns the canonical column name for header and whether the column
// is accepted. Matching is case-insensitive on the trimmed header.
func (v ValidColumns) Resolve(header string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(header))
	if name == "" {
		return "", false
	}
	if name == KeyColumn {
		return KeyColumn, true
	}
	locale, ok := v.locales[name]
	return locale, ok
}

// Names lists the accepted column names, key first then sorted locales.
func (v ValidColumns) Names() []string {
	out := make([]string, 0, len(v.locales)+1)
	for _, locale := range v.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return append([]string{KeyColumn}, out...)
}

// ImportSession holds an uploaded document together with the operator's
// header renames. Renaming never reorders columns.
type ImportSession struct {
	doc     *CSVDocument
	headers []string
}

// NewImportSession starts a session with headers equal to the originals.
func NewImportSession(doc *CSVDocument) *ImportSession {
	if doc == nil {
		doc = &CSVDocument{}
	}
	return &ImportSession{doc: doc, headers: append([]string(nil), doc.Headers...)}
}

// Document returns the parsed source document.
func (s *ImportSession) Document() *CSVDocument { return s.doc }

// Headers returns the current (possibly renamed) headers.
func (s *ImportSession) Headers() []string { return append([]string(nil), s.headers...) }

// OriginalHeaders returns the headers as read from the file.
func (s *ImportSession) OriginalHeaders() []string { return append([]string(nil), s.doc.Headers...) }

// Rename sets the header at index.
func (s *ImportSession) Rename(index int, name string) error {
	if index < 0 || index >= len(s.headers) {
		return fmt.Errorf("dashboard: column index %d out of range (0-%d)", index, len(s.headers)-1)
	}
	s.headers[index] = name
	return nil
}

// RenameAll replaces every header at once, as the preview table does.
func (s *ImportSession) RenameAll(names []string) error {
	if len(names) != len(s.headers) {
		return fmt.Errorf("dashboard: expected %d headers, got %d", len(s.headers), len(names))
	}
	copy(s.headers, names)
	return nil
}

// ApplyMapping renames every column whose original header matches a mapping
// key (case-insensitive). It returns how many columns were renamed.
func (s *ImportSession) ApplyMapping(mapping map[string]string) int {
	if len(mapping) == 0 {
		return 0
	}
	lookup := make(map[string]string, len(mapping))
	for from, to := range mapping {
		lookup[strings.ToLower(strings.TrimSpace(from))] = to
	}
	renamed := 0
	for idx, original := range s.doc.Headers {
		if to, ok := lookup[strings.ToLower(strings.TrimSpace(original))]; ok {
			s.headers[idx] = to
			renamed++
		}
	}
	return renamed
}

// CSVPreview is the first rows of a document in original column order.
type CSVPreview struct {
	Headers         []string
	OriginalHeaders []string
	Rows            [][]string
	Total           int
}

// Preview returns up to limit rows. A non-positive limit uses
// DefaultPreviewRows.
func (s *ImportSession) Preview(limit int) CSVPreview {
	if limit <= 0 {
		limit = DefaultPreviewRows
	}
	n := min(limit, len(s.doc.Rows))
	rows := make([][]string, n)
	for i := range n {
		rows[i] = append([]string(nil), s.doc.Rows[i]...)
	}
	return CSVPreview{
		Headers:         s.Headers(),
		OriginalHeaders: s.OriginalHeaders(),
		Rows:            rows,
		Total:           len(s.doc.Rows),
	}
}

// ColumnStatus reports whether a column survives the upload filter.
type ColumnStatus struct {
	Index    int    `json:"index"`
	Original string `json:"original"`
	Header   string `json:"header"`
	Column   string `json:"column,omitempty"`
	Kept     bool   `json:"kept"`
	Reason   string `json:"reason,omitempty"`
}

// Columns evaluates every column against valid. The first column resolving
// to a given name wins; later duplicates are dropped.
func (s *ImportSession) Columns(valid ValidColumns) []ColumnStatus {
	seen := map[string]bool{}
	out := make([]ColumnStatus, len(s.headers))
	for idx, header := range s.headers {
		status := ColumnStatus{Index: idx, Original: s.doc.Headers[idx], Header: header}
		name, ok := valid.Resolve(header)
		switch {
		case !ok:
			status.Reason = "unrecognized"
		case seen[name]:
			status.Reason = "duplicate"
		default:
			seen[name] = true
			status.Column = name
			status.Kept = true
		}
		out[idx] = status
	}
	return out
}

// Build serializes the kept columns of every row with their renamed headers.
// The result is what gets uploaded.
func (s *ImportSession) Build(valid ValidColumns) ([]byte, error) {
	columns := s.Columns(valid)
	kept := make([]int, 0, len(columns))
	header := make([]string, 0, len(columns))
	for _, col := range columns {
		if col.Kept {
			kept = append(kept, col.Index)
			header = append(header, col.Column)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w (expected one of %s)", ErrNoColumns, strings.Join(valid.Names(), ", "))
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("dashboard: write csv header: %w", err)
	}
	record := make([]string, len(kept))
	for _, row := range s.doc.Rows {
		for i, idx := range kept {
			record[i] = row[idx]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("dashboard: write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("dashboard: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

var keyHeaderAliases = map[string]bool{
	"key":      true,
	"keys":     true,
	"key name": true,
	"keyname":  true,
	"key_name": true,
}

// SuggestMapping proposes a column name for headers that look like a key
// column or name a known language ("Indonesian", "Bahasa Indonesia", "ID").
// Only headers whose suggestion differs from the current header are returned.
func (s *ImportSession) SuggestMapping(languages []Language) map[int]string {
	names := map[string]string{}
	for _, lang := range languages {
		locale := strings.TrimSpace(lang.Locale)
		if locale == "" {
			continue
		}
		names[strings.ToLower(locale)] = locale
		if lang.Name != "" {
			names[strings.ToLower(strings.TrimSpace(lang.Name))] = locale
		}
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		if english := display.English.Tags().Name(tag); english != "" {
			names[strings.ToLower(english)] = locale
		}
		if self := display.Self.Name(tag); self != "" {
			names[strings.ToLower(self)] = locale
		}
	}

	out := map[int]string{}
	for idx, header := range s.headers {
		normalized := strings.ToLower(strings.TrimSpace(header))
		if keyHeaderAliases[normalized] {
			if header != KeyColumn {
				out[idx] = KeyColumn
			}
			continue
		}
		if locale, ok := names[normalized]; ok && header != locale {
			out[idx] = locale
		}
	}
	return out
}
