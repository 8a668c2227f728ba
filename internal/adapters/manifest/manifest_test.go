package manifest_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/adapters/manifest"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const helloMD5 = "5d41402abc4b2a76b9719d911017c592"

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func newMockClient(handler func(req *http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{Transport: &MockRoundTripper{RoundTripFunc: handler}}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestRemote_Load(t *testing.T) {
	t.Run("Nested", func(t *testing.T) {
		var gotURL string
		client := newMockClient(func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			return jsonResponse(http.StatusOK,
				`{"checksums":{"6.4.3":{"index.php":"`+helloMD5+`","wp-load.php":"`+strings.ToUpper(helloMD5)+`"}}}`), nil
		})

		remote := manifest.NewRemoteWithClient("https://checksums.test/core/", "de_DE", client)
		m, err := remote.Load(t.Context(), "6.4.3")
		require.NoError(t, err)

		assert.Equal(t, "https://checksums.test/core/?locale=de_DE&version=6.4.3", gotURL)
		assert.Equal(t, 2, m.Len())
		digest, ok := m.Lookup("wp-load.php")
		assert.True(t, ok)
		assert.Equal(t, helloMD5, digest)
	})

	t.Run("Flat", func(t *testing.T) {
		client := newMockClient(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"checksums":{"index.php":"`+helloMD5+`"}}`), nil
		})

		m, err := manifest.NewRemoteWithClient("https://checksums.test/", "", client).Load(t.Context(), "6.4.3")
		require.NoError(t, err)
		assert.Equal(t, []string{"index.php"}, m.Paths())
	})

	t.Run("Transport failure", func(t *testing.T) {
		client := newMockClient(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := manifest.NewRemoteWithClient("https://checksums.test/", "", client).Load(t.Context(), "6.4.3")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestFetch.Error())
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Unexpected status", func(t *testing.T) {
		client := newMockClient(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusServiceUnavailable, ""), nil
		})

		_, err := manifest.NewRemoteWithClient("https://checksums.test/", "", client).Load(t.Context(), "6.4.3")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestFetch.Error())
	})

	t.Run("Unknown version", func(t *testing.T) {
		client := newMockClient(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"checksums":false}`), nil
		})

		_, err := manifest.NewRemoteWithClient("https://checksums.test/", "", client).Load(t.Context(), "0.0.1")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestFormat.Error())
	})

	t.Run("Invalid digest", func(t *testing.T) {
		client := newMockClient(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"checksums":{"6.4.3":{"index.php":"not-hex"}}}`), nil
		})

		_, err := manifest.NewRemoteWithClient("https://checksums.test/", "", client).Load(t.Context(), "6.4.3")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestFormat.Error())
	})

	t.Run("Real server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "6.5", r.URL.Query().Get("version"))
			assert.Empty(t, r.URL.Query().Get("locale"))
			_, _ = io.WriteString(w, `{"checksums":{"6.5":{"index.php":"`+helloMD5+`"}}}`)
		}))
		t.Cleanup(srv.Close)

		m, err := manifest.NewRemote(srv.URL, "").Load(t.Context(), "6.5")
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		client := newMockClient(func(req *http.Request) (*http.Response, error) {
			return nil, req.Context().Err()
		})

		_, err := manifest.NewRemoteWithClient("https://checksums.test/", "", client).Load(ctx, "6.4.3")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestFetch.Error())
	})
}

func TestDecodeRemote(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    map[string]string
	}{
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "missing checksums", body: `{}`, wantErr: true},
		{name: "null checksums", body: `{"checksums":null}`, wantErr: true},
		{name: "checksums array", body: `{"checksums":[]}`, wantErr: true},
		{name: "other version only", body: `{"checksums":{"6.3":{"a.php":"` + helloMD5 + `"}}}`, wantErr: true},
		{name: "empty version", body: `{"checksums":{"6.4":{}}}`, wantErr: true},
		{name: "nested", body: `{"checksums":{"6.4":{"a.php":"ab"}}}`, want: map[string]string{"a.php": "ab"}},
		{name: "flat", body: `{"checksums":{"a.php":"ab"}}`, want: map[string]string{"a.php": "ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := manifest.DecodeRemote([]byte(tt.body), "6.4")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrManifestFormat.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocal_Load(t *testing.T) {
	t.Run("Relative to root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "checksums.json"),
			[]byte(`{"index.php":"`+helloMD5+`"}`), 0o644))

		m, err := manifest.NewLocal("").Load(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"index.php"}, m.Paths())
	})

	t.Run("Absolute", func(t *testing.T) {
		dir := t.TempDir()
		baseline := filepath.Join(dir, "baseline.json")
		require.NoError(t, os.WriteFile(baseline, []byte(`{"a.php":"`+helloMD5+`"}`), 0o644))

		local := manifest.NewLocal(baseline)
		assert.Equal(t, baseline, local.Path("/elsewhere"))

		m, err := local.Load("/elsewhere")
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := manifest.NewLocal("").Load(t.TempDir())
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrBaselineNotFound.Error())
	})

	t.Run("Directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "checksums.json"), 0o755))

		_, err := manifest.NewLocal("").Load(root)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrBaselineRead.Error())
	})

	t.Run("Malformed", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "checksums.json"), []byte(`["index.php"]`), 0o644))

		_, err := manifest.NewLocal("").Load(root)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestFormat.Error())
	})

	t.Run("Empty", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "checksums.json"), []byte(`{}`), 0o644))

		_, err := manifest.NewLocal("").Load(root)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestFormat.Error())
	})
}

func TestProvider_Load(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "checksums.json"),
		[]byte(`{"index.php":"`+helloMD5+`"}`), 0o644))

	requests := 0
	client := newMockClient(func(*http.Request) (*http.Response, error) {
		requests++
		return jsonResponse(http.StatusOK, `{"checksums":{"6.4.3":{"a.php":"`+helloMD5+`","b.php":"`+helloMD5+`"}}}`), nil
	})

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("baseline manifest loaded", gomock.Any()).Times(2)

	provider := manifest.NewProvider(
		manifest.NewRemoteWithClient("https://checksums.test/", "", client),
		manifest.NewLocal(""),
		log,
	)

	local, err := provider.Load(t.Context(), ports.ManifestRequest{Source: domain.SourceLocal, Root: root})
	require.NoError(t, err)
	assert.Equal(t, 1, local.Len())
	assert.Equal(t, 0, requests)

	online, err := provider.Load(t.Context(), ports.ManifestRequest{Source: domain.SourceOnline, Version: "6.4.3", Root: root})
	require.NoError(t, err)
	assert.Equal(t, 2, online.Len())
	assert.Equal(t, 1, requests)

	_, err = provider.Load(t.Context(), ports.ManifestRequest{Source: domain.SourceOnline, Root: root})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrVersionRequired)
	assert.Equal(t, 1, requests)
}
