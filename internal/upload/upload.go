// Package upload proxies image files to the external upload provider.
// The provider is a black box: it returns one durable URL per file and the
// rest of the system stores that URL as an opaque string.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/webfolio/webfolio/internal/config"
)

const defaultTimeout = 30 * time.Second

var (
	// ErrTooManyFiles is returned when a request exceeds the slot's file count.
	ErrTooManyFiles = errors.New("too many files for this upload slot")

	// ErrFileTooLarge is returned when a file exceeds the slot's size limit.
	ErrFileTooLarge = errors.New("file exceeds the upload slot size limit")

	// ErrUpstream is returned when the upload provider rejects or fails a
	// request. It covers the UpstreamUploadFailed error category.
	ErrUpstream = errors.New("upload provider failed")

	// ErrUnknownSlot is returned for an upload slot that is not configured.
	ErrUnknownSlot = errors.New("unknown upload slot")
)

// Slot describes an upload target and its limits.
type Slot struct {
	Name     string
	MaxFiles int
	MaxBytes int64
}

// Single-image slots take one file up to 2MB; the gallery slot takes up to
// ten files of 4MB each.
var slots = map[string]Slot{
	"avatar":    {Name: "avatar", MaxFiles: 1, MaxBytes: 2 << 20},
	"thumbnail": {Name: "thumbnail", MaxFiles: 1, MaxBytes: 2 << 20},
	"gallery":   {Name: "gallery", MaxFiles: 10, MaxBytes: 4 << 20},
}

// SlotByName resolves a slot name.
func SlotByName(name string) (Slot, error) {
	s, ok := slots[name]
	if !ok {
		return Slot{}, ErrUnknownSlot
	}

	return s, nil
}

// File is one file to upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Client talks to the upload provider.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewClient creates an upload client from the configuration.
func NewClient(cfg config.Upload) *Client {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
	}
}

// providerResponse is the provider's reply, one entry per uploaded file.
type providerResponse struct {
	Files []struct {
		Key string `json:"key"`
		URL string `json:"url"`
	} `json:"files"`
}

// Upload validates the files against the slot limits and forwards them to
// the provider in one multipart request. Group is the caller's logical
// grouping hint, e.g. the project slug the images belong to. Returns one
// durable URL per file, in input order.
func (c *Client) Upload(ctx context.Context, slot Slot, group string, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if len(files) > slot.MaxFiles {
		return nil, fmt.Errorf("%w: %s takes at most %d", ErrTooManyFiles, slot.Name, slot.MaxFiles)
	}

	for _, f := range files {
		if int64(len(f.Data)) > slot.MaxBytes {
			return nil, fmt.Errorf("%w: %s is limited to %d bytes", ErrFileTooLarge, slot.Name, slot.MaxBytes)
		}
	}

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	for _, f := range files {
		// a fresh key per file, the provider derives the durable URL from it
		key := uuid.NewString()

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, key, f.Name))
		header.Set("X-Upload-Key", key)

		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build multipart body")
		}

		if _, err := part.Write(f.Data); err != nil {
			return nil, errors.Wrap(err, "failed to build multipart body")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to build multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build upload request")
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Upload-Slot", slot.Name)

	if group != "" {
		req.Header.Set("X-Upload-Group", group)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, payload)
	}

	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUpstream, err)
	}

	if len(parsed.Files) != len(files) {
		return nil, fmt.Errorf("%w: expected %d urls, got %d", ErrUpstream, len(files), len(parsed.Files))
	}

	urls := make([]string, len(parsed.Files))
	for i, f := range parsed.Files {
		urls[i] = f.URL
	}

	return urls, nil
}
