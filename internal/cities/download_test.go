package cities

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/cities-cli/internal/fetcher"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func createTestZIP(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newTestFetcher() *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: "test-agent",
		RateLimit: rate.Inf,
	})
}

// stubFetcher serves a fixed body or error without touching the network.
type stubFetcher struct {
	body io.Reader
	err  error
	urls []string
}

func (s *stubFetcher) Download(_ context.Context, url string) (io.ReadCloser, error) {
	s.urls = append(s.urls, url)
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(s.body), nil
}

// brokenStream yields part of a payload and then fails.
type brokenStream struct {
	data []byte
	err  error
}

func (b *brokenStream) Read(p []byte) (int, error) {
	if len(b.data) == 0 {
		return 0, b.err
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

func TestDownload_ExtractsArchive(t *testing.T) {
	payload := createTestZIP(t, map[string]string{
		"cities500.txt": mogadishuRow + "\n",
		"readme.txt":    "GeoNames",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	layout := Layout{Root: t.TempDir()}
	d := NewDownloader(newTestFetcher(), layout)
	d.url = srv.URL + "/export/dump/cities500.zip"

	require.NoError(t, d.Download(context.Background()))

	data, err := os.ReadFile(layout.SourceFile())
	require.NoError(t, err)
	assert.Equal(t, mogadishuRow+"\n", string(data))
	assert.FileExists(t, filepath.Join(layout.ExtractDir(), "readme.txt"))
}

func TestDownload_UsesSourceURL(t *testing.T) {
	stub := &stubFetcher{body: bytes.NewReader(createTestZIP(t, map[string]string{"cities500.txt": "x"}))}
	d := NewDownloader(stub, Layout{Root: t.TempDir()})

	require.NoError(t, d.Download(context.Background()))
	assert.Equal(t, []string{SourceURL}, stub.urls)
}

func TestDownload_OverwritesPreviousExtraction(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	require.NoError(t, os.MkdirAll(layout.ExtractDir(), 0o755))
	require.NoError(t, os.WriteFile(layout.SourceFile(), []byte("stale"), 0o644))

	stub := &stubFetcher{body: bytes.NewReader(createTestZIP(t, map[string]string{"cities500.txt": "fresh"}))}
	require.NoError(t, NewDownloader(stub, layout).Download(context.Background()))

	data, err := os.ReadFile(layout.SourceFile())
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestDownload_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	layout := Layout{Root: t.TempDir()}
	d := NewDownloader(newTestFetcher(), layout)
	d.url = srv.URL + "/cities500.zip"

	err := d.Download(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.NoFileExists(t, layout.SourceFile())
}

func TestDownload_TransportErrorSurfacesCause(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")
	d := NewDownloader(&stubFetcher{err: transportErr}, Layout{Root: t.TempDir()})

	err := d.Download(context.Background())
	require.Error(t, err)
	assert.Equal(t, transportErr, eris.Cause(err))
}

func TestDownload_StreamErrorStopsExtraction(t *testing.T) {
	payload := createTestZIP(t, map[string]string{"cities500.txt": mogadishuRow})
	streamErr := errors.New("unexpected EOF from peer")

	layout := Layout{Root: t.TempDir()}
	stub := &stubFetcher{body: &brokenStream{data: payload[:len(payload)-8], err: streamErr}}

	err := NewDownloader(stub, layout).Download(context.Background())
	require.Error(t, err)
	assert.Equal(t, streamErr, eris.Cause(err))

	entries, err := os.ReadDir(layout.ExtractDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownload_MalformedArchive(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	stub := &stubFetcher{body: bytes.NewReader([]byte("<html>not a zip</html>"))}

	err := NewDownloader(stub, layout).Download(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cities: extract archive")
}
