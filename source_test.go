package termart

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFetcher() *Fetcher {
	f := NewFetcher(2 * time.Second)
	f.Backoff = time.Millisecond
	return f
}

func TestFetcherFetch(t *testing.T) {
	data := encodePNG(t, createTestImage(12, 8))

	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	img, format, err := testFetcher().Fetch(context.Background(), srv.URL+"/sprite.png")
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
	assert.Equal(t, DefaultUserAgent, userAgent)
}

func TestFetcherErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantCalls  int32
	}{
		{
			name: "not found is not retried",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantStatus: http.StatusNotFound,
			wantCalls:  1,
		},
		{
			name: "server errors are retried",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
			wantCalls:  DefaultRetries + 1,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>definitely not an image</html>"))
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			img, _, err := testFetcher().Fetch(context.Background(), srv.URL)
			require.Error(t, err)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, ErrRenderUnavailable)
			assert.Equal(t, tt.wantCalls, calls.Load())

			var statusErr *StatusError
			if tt.wantStatus != 0 {
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
			} else {
				assert.False(t, errors.As(err, &statusErr))
			}
		})
	}
}

func TestFetcherRecoversAfterRetry(t *testing.T) {
	data := encodePNG(t, createTestImage(4, 4))

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	img, _, err := testFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcherCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := testFetcher().Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, ErrRenderUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecode(t *testing.T) {
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, createTestImage(9, 5), nil))

	tests := []struct {
		name       string
		data       []byte
		wantFormat string
		wantErr    bool
	}{
		{name: "png", data: encodePNG(t, createTestImage(9, 5)), wantFormat: "png"},
		{name: "jpeg", data: jpg.Bytes(), wantFormat: "jpeg"},
		{name: "garbage", data: []byte("GIF89a but truncated"), wantErr: true},
		{name: "empty", data: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := Decode(bytes.NewReader(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRenderUnavailable)
				assert.Nil(t, img)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, image.Rect(0, 0, 9, 5), img.Bounds())
		})
	}
}

func TestDecodeKeepsTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	img, _, err := Decode(bytes.NewReader(encodePNG(t, src)))
	require.NoError(t, err)

	_, _, _, a := img.At(1, 0).RGBA()
	assert.Zero(t, a)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprite.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, createTestImage(6, 3)), 0o644))

	img, format, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 6, img.Bounds().Dx())

	_, _, err = Load(context.Background(), filepath.Join(dir, "missing.png"), nil)
	assert.ErrorIs(t, err, ErrRenderUnavailable)

	_, _, err = Load(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrRenderUnavailable)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://raw.githubusercontent.com/a.png"))
	assert.True(t, IsURL("HTTP://example.com/a.png"))
	assert.False(t, IsURL("ftp://example.com/a.png"))
	assert.False(t, IsURL("./https.png"))
	assert.False(t, IsURL("-"))
}
