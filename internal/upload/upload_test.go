package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfolio/webfolio/internal/config"
)

func newTestProvider(t *testing.T, status int) (*httptest.Server, *[]*http.Request) {
	t.Helper()

	var seen []*http.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(64<<20))

		seen = append(seen, r)

		if status != http.StatusOK {
			w.WriteHeader(status)

			return
		}

		type entry struct {
			Key string `json:"key"`
			URL string `json:"url"`
		}

		var files []entry

		for key := range r.MultipartForm.File {
			files = append(files, entry{Key: key, URL: "https://cdn.example.com/" + key})
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"files": files}))
	}))

	t.Cleanup(server.Close)

	return server, &seen
}

func TestSlotByName(t *testing.T) {
	for _, name := range []string{"avatar", "thumbnail", "gallery"} {
		slot, err := SlotByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, slot.Name)
	}

	_, err := SlotByName("banner")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestUploadForwardsFiles(t *testing.T) {
	server, seen := newTestProvider(t, http.StatusOK)

	client := NewClient(config.Upload{Endpoint: server.URL, Token: "secret"})

	slot, err := SlotByName("gallery")
	require.NoError(t, err)

	urls, err := client.Upload(context.Background(), slot, "my-project", []File{
		{Name: "one.png", ContentType: "image/png", Data: []byte("png-bytes")},
		{Name: "two.png", ContentType: "image/png", Data: []byte("more-png-bytes")},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)

	for _, u := range urls {
		assert.Contains(t, u, "https://cdn.example.com/")
	}

	require.Len(t, *seen, 1)

	req := (*seen)[0]
	assert.Equal(t, "gallery", req.Header.Get("X-Upload-Slot"))
	assert.Equal(t, "my-project", req.Header.Get("X-Upload-Group"))
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
	assert.Len(t, req.MultipartForm.File, 2)
}

func TestUploadSlotLimits(t *testing.T) {
	server, _ := newTestProvider(t, http.StatusOK)

	client := NewClient(config.Upload{Endpoint: server.URL})

	avatar, err := SlotByName("avatar")
	require.NoError(t, err)

	t.Run("too many files", func(t *testing.T) {
		_, err := client.Upload(context.Background(), avatar, "", []File{
			{Name: "a.png", Data: []byte("a")},
			{Name: "b.png", Data: []byte("b")},
		})
		assert.ErrorIs(t, err, ErrTooManyFiles)
	})

	t.Run("file too large", func(t *testing.T) {
		_, err := client.Upload(context.Background(), avatar, "", []File{
			{Name: "huge.png", Data: make([]byte, (2<<20)+1)},
		})
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("gallery takes larger files", func(t *testing.T) {
		gallery, err := SlotByName("gallery")
		require.NoError(t, err)

		urls, err := client.Upload(context.Background(), gallery, "", []File{
			{Name: "big.png", Data: make([]byte, 3<<20)},
		})
		require.NoError(t, err)
		assert.Len(t, urls, 1)
	})

	t.Run("no files is a no-op", func(t *testing.T) {
		urls, err := client.Upload(context.Background(), avatar, "", nil)
		require.NoError(t, err)
		assert.Nil(t, urls)
	})
}

func TestUploadUpstreamFailure(t *testing.T) {
	server, _ := newTestProvider(t, http.StatusBadGateway)

	client := NewClient(config.Upload{Endpoint: server.URL})

	slot, err := SlotByName("thumbnail")
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), slot, "", []File{
		{Name: "thumb.png", Data: []byte("bytes")},
	})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestUploadUnreachableProvider(t *testing.T) {
	client := NewClient(config.Upload{Endpoint: fmt.Sprintf("http://127.0.0.1:%d", 1)})

	slot, err := SlotByName("avatar")
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), slot, "", []File{
		{Name: "a.png", Data: []byte("a")},
	})
	assert.ErrorIs(t, err, ErrUpstream)
}
