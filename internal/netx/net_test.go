package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadToPresignedURL(t *testing.T) {
	file := []byte("%PDF-1.3 fake")

	t.Run("success", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := UploadToPresignedURL(context.Background(), ts.Client(), ts.URL+"/k?X-Amz-Signature=abc", "application/pdf", file)
		require.NoError(t, err)
		require.Equal(t, http.MethodPut, gotMethod)
		require.Equal(t, "application/pdf", gotCT)
		require.Equal(t, file, gotBody)
	})

	t.Run("default content type", func(t *testing.T) {
		var gotCT string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
		}))
		defer ts.Close()

		require.NoError(t, UploadToPresignedURL(context.Background(), nil, ts.URL, "", file))
		require.Equal(t, "application/octet-stream", gotCT)
	})

	t.Run("non-200", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		err := UploadToPresignedURL(context.Background(), nil, ts.URL, "", file)
		require.ErrorContains(t, err, "upload failed: 403")
	})

	t.Run("server gone", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := UploadToPresignedURL(context.Background(), nil, ts.URL, "", file)
		require.Error(t, err)
		require.NotContains(t, err.Error(), "upload failed")
	})
}

func TestDownloadFromPresignedURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer ts.Close()

	b, err := DownloadFromPresignedURL(context.Background(), nil, ts.URL+"/ok")
	require.NoError(t, err)
	require.Equal(t, "payload", string(b))

	_, err = DownloadFromPresignedURL(context.Background(), nil, ts.URL+"/missing")
	require.ErrorContains(t, err, "download failed: 404")
}
