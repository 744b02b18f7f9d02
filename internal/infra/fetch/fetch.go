package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/masonlherndon/vsclone/internal/cli/output"
	"github.com/masonlherndon/vsclone/internal/telemetry/logger"
)

// Client streams URLs to files. Downloads block until complete; no deadline
// is imposed beyond what the transport provides.
type Client struct {
	http     *http.Client
	progress io.Writer
	log      logger.Logger
}

// New creates a download client. Progress is rendered to progress, typically
// stderr; pass io.Discard for quiet runs.
func New(log logger.Logger, progress io.Writer) *Client {
	return &Client{
		http:     &http.Client{},
		progress: progress,
		log:      log,
	}
}

// Fetch downloads url into dir. name is the desired filename; when empty the
// filename comes from the Content-Disposition header, falling back to a
// generated unique name. Any non-success status is an error. The returned
// path is relative to dir.
func (c *Client) Fetch(ctx context.Context, url, dir, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	headerName := filenameFromHeader(resp.Header)

	final := name
	if final == "" {
		final = headerName
	}
	display := final
	if final == "" {
		// Nothing suggested a name; generate one and show the URL instead.
		final = ulid.Make().String()
		display = url
	}

	file, err := os.Create(filepath.Join(dir, final))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", final, err)
	}
	defer file.Close()

	bar := output.NewProgressBar(c.progress, display)
	bar.SetTotal(resp.ContentLength)

	if _, err := io.Copy(io.MultiWriter(file, progressWriter{bar}), resp.Body); err != nil {
		return "", fmt.Errorf("stream %s: %w", display, err)
	}
	bar.Finish()

	c.log.Debug("downloaded artifact", "url", url, "file", final)
	return final, nil
}

// progressWriter feeds byte counts into a ProgressBar as data streams by.
type progressWriter struct {
	bar *output.ProgressBar
}

func (w progressWriter) Write(p []byte) (int, error) {
	w.bar.Increment(int64(len(p)))
	return len(p), nil
}

var dispositionRE = regexp.MustCompile(`filename=([^;]+)`)

// filenameFromHeader extracts the suggested filename from a
// Content-Disposition header, stripping any surrounding quotes. Returns ""
// when the header is absent or carries no filename.
func filenameFromHeader(h http.Header) string {
	disposition := h.Get("Content-Disposition")
	if disposition == "" {
		return ""
	}
	match := dispositionRE.FindStringSubmatch(disposition)
	if match == nil {
		return ""
	}
	name := strings.TrimSpace(match[1])
	name = strings.Trim(name, `'"`)
	// Never allow a header to steer the file outside dir.
	return filepath.Base(name)
}
