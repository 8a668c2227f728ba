package manifest

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 30 * time.Second
	maxResponseBytes  = 64 << 20
)

// Remote fetches published checksums for a release from the checksum service.
type Remote struct {
	endpoint   string
	locale     string
	httpClient *http.Client
}

// NewRemote creates a Remote querying endpoint. locale is optional.
func NewRemote(endpoint, locale string) *Remote {
	return newRemoteWithClient(endpoint, locale, &http.Client{
		Timeout: httpClientTimeout,
	})
}

// newRemoteWithClient creates a Remote with a custom http client (used for testing).
func newRemoteWithClient(endpoint, locale string, client *http.Client) *Remote {
	return &Remote{
		endpoint:   endpoint,
		locale:     locale,
		httpClient: client,
	}
}

// Load fetches and validates the manifest for version.
func (r *Remote) Load(ctx context.Context, version string) (*domain.Manifest, error) {
	body, err := r.fetch(ctx, version)
	if err != nil {
		return nil, err
	}

	entries, err := decodeRemote(body, version)
	if err != nil {
		return nil, err
	}

	return domain.NewManifest(entries)
}

func (r *Remote) requestURL(version string) (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrManifestFetch, err.Error()), "endpoint", r.endpoint)
	}

	q := u.Query()
	q.Set("version", version)
	if r.locale != "" {
		q.Set("locale", r.locale)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (r *Remote) fetch(ctx context.Context, version string) ([]byte, error) {
	target, err := r.requestURL(version)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestFetch, err.Error()), "url", target)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestFetch, err.Error()), "url", target)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.Wrap(domain.ErrManifestFetch, "unexpected status from checksum service")
		statusErr = zerr.With(statusErr, "status_code", resp.StatusCode)
		return nil, zerr.With(statusErr, "version", version)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestFetch, err.Error()), "url", target)
	}

	return body, nil
}
