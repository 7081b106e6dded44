package fetch

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
)

func TestHTTPFetcher_SendsHeaders(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher("test-agent", map[string]string{"Accept-Language": "zh-TW"}, time.Second, 0)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "<html></html>", string(body))
	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, "zh-TW", gotLang)
}

func TestHTTPFetcher_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewHTTPFetcher("", nil, time.Second, 0)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status 502")
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewHTTPFetcher("", nil, 20*time.Millisecond, 0)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestNew_PicksImplementation(t *testing.T) {
	_, isHTTP := New(config.FetchConfig{}, time.Second).(*HTTPFetcher)
	assert.True(t, isHTTP)

	_, isBrowser := New(config.FetchConfig{RenderJS: true}, time.Second).(*BrowserFetcher)
	assert.True(t, isBrowser)
}

func TestHTTPFetcher_DecodesCompressedBodies(t *testing.T) {
	const page = "<html><div class=\"eventRow__main\"></div></html>"

	tests := []struct {
		encoding string
		encode   func(t *testing.T, w io.Writer)
	}{
		{"br", func(t *testing.T, w io.Writer) {
			bw := brotli.NewWriter(w)
			_, err := bw.Write([]byte(page))
			require.NoError(t, err)
			require.NoError(t, bw.Close())
		}},
		{"zstd", func(t *testing.T, w io.Writer) {
			zw, err := zstd.NewWriter(w)
			require.NoError(t, err)
			_, err = zw.Write([]byte(page))
			require.NoError(t, err)
			require.NoError(t, zw.Close())
		}},
		{"gzip", func(t *testing.T, w io.Writer) {
			gw := gzip.NewWriter(w)
			_, err := gw.Write([]byte(page))
			require.NoError(t, err)
			require.NoError(t, gw.Close())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			var gotAccept string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAccept = r.Header.Get("Accept-Encoding")
				w.Header().Set("Content-Encoding", tt.encoding)
				tt.encode(t, w)
			}))
			defer srv.Close()

			body, err := NewHTTPFetcher("", nil, time.Second, 0).Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
			assert.Equal(t, page, string(body))
			assert.Contains(t, gotAccept, tt.encoding)
		})
	}
}
