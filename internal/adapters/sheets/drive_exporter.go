package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
	"water-quality-dashboard/internal/platform/obs"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// XLSXMimeType is the export format requested from Drive.
const XLSXMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Scopes requested for the service account used to export the spreadsheet.
var DriveScopes = []string{
	"https://spreadsheets.google.com/feeds",
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/drive",
}

// DriveExporter implements WorkbookSource by exporting a Google Sheets
// spreadsheet as xlsx through the Drive v3 API.
//
// When MirrorPath is set, every successful export is also written to that
// file so the dashboard can start from it without network access.
// The exporter is safe for concurrent use.
type DriveExporter struct {
	session       *http.Client
	tokens        oauth2.TokenSource
	baseURL       string
	spreadsheetID string
	MirrorPath    string
}

func NewDriveExporter(spreadsheetID string, tokens oauth2.TokenSource) (*DriveExporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("drive exporter: spreadsheet id is empty")
	}
	if tokens == nil {
		return nil, errors.New("drive exporter: token source is nil")
	}

	return &DriveExporter{
		session:       &http.Client{Timeout: 30 * time.Second},
		tokens:        tokens,
		baseURL:       "https://www.googleapis.com",
		spreadsheetID: spreadsheetID,
	}, nil
}

// ServiceAccountTokens builds a token source from a service-account JSON key file.
func ServiceAccountTokens(ctx context.Context, keyFile string) (oauth2.TokenSource, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("service account: read key %q: %w", keyFile, err)
	}

	conf, err := google.JWTConfigFromJSON(key, DriveScopes...)
	if err != nil {
		return nil, fmt.Errorf("service account: parse key %q: %w", keyFile, err)
	}

	return conf.TokenSource(ctx), nil
}

// WithBaseURL points the exporter at a different API host.
func (d *DriveExporter) WithBaseURL(u string) *DriveExporter {
	d.baseURL = u
	return d
}

// Key identifies the exported spreadsheet for caching.
func (d *DriveExporter) Key() string {
	return "drive:" + d.spreadsheetID
}

func (d *DriveExporter) exportURL() string {
	q := url.Values{}
	q.Set("mimeType", XLSXMimeType)
	return fmt.Sprintf("%s/drive/v3/files/%s/export?%s", d.baseURL, url.PathEscape(d.spreadsheetID), q.Encode())
}

// Fetch downloads the current spreadsheet contents as xlsx.
func (d *DriveExporter) Fetch(ctx context.Context) (_ []byte, err error) {
	defer obs.Time(ctx, "drive.Export")(&err)

	endpoint := d.exportURL()

	resp, err := d.doWithRetry(ctx, func() (*http.Request, error) {
		return d.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("export spreadsheet %q: %w", d.spreadsheetID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("export spreadsheet %q: read body: %w", d.spreadsheetID, err)
	}

	if d.MirrorPath != "" {
		if err := os.WriteFile(d.MirrorPath, data, 0o644); err != nil {
			log.Printf("workbook mirror write failed path=%s: %v", d.MirrorPath, err)
		}
	}

	return data, nil
}
