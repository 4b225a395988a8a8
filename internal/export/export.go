package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-jobfinder-automation/internal/backend"
	"go-jobfinder-automation/internal/search"
)

//ErrUnsupportedFormat marks an unregistered export format. Export stops and
//propagates it rather than silently defaulting.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

//Filename builds a unique output name from the given timestamp.
func Filename(format string, ts time.Time) string {
	return fmt.Sprintf("job-results-%s.%s", ts.Format("2006-01-02T15-04-05"), strings.ToLower(format))
}

//Exporter serializes record lists through the backend's file-write primitive,
//so every export lands in the action log like any other automation action.
type Exporter struct {
	backend backend.Backend
}

func New(b backend.Backend) *Exporter {
	return &Exporter{backend: b}
}

//Export writes records to path in the given format. Unsupported formats fail
//before anything is written.
func (e *Exporter) Export(ctx context.Context, records []search.Record, format, path string) (string, error) {
	var content string
	switch strings.ToLower(format) {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal records: %w", err)
		}
		content = string(data)
	case FormatCSV:
		content = encodeCSV(records)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return e.backend.WriteFile(ctx, path, content)
}

var csvHeader = []string{"id", "title", "company", "location", "description", "url", "postedDate", "easyApply"}

//encodeCSV renders the tabular format with every field quoted and escaped,
//not just the ones that need it.
func encodeCSV(records []search.Record) string {
	var sb strings.Builder
	writeRow(&sb, csvHeader)
	for _, r := range records {
		posted := ""
		if !r.PostedDate.IsZero() {
			posted = r.PostedDate.Format(time.RFC3339)
		}
		writeRow(&sb, []string{
			r.ID,
			r.Title,
			r.Company,
			r.Location,
			r.Description,
			r.URL,
			posted,
			strconv.FormatBool(r.EasyApply),
		})
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
