package manifest

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/zerr"
)

// checksumResponse is the envelope returned by the checksum service. Checksums holds
// either {version: {path: digest}} or, for some locale queries, {path: digest}.
// The service answers false for versions it does not know.
type checksumResponse struct {
	Checksums json.RawMessage `json:"checksums"`
}

// decodeRemote extracts the path to digest mapping for version from a service response.
func decodeRemote(body []byte, version string) (map[string]string, error) {
	var resp checksumResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, formatError(err.Error())
	}

	raw := bytes.TrimSpace(resp.Checksums)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return nil, zerr.With(formatError("no checksums published"), "version", version)
	}

	var byVersion map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byVersion); err != nil {
		return nil, formatError("checksums is not an object")
	}

	if nested, ok := byVersion[version]; ok {
		entries, err := decodeFlat(nested)
		if err != nil {
			return nil, zerr.With(err, "version", version)
		}
		return entries, nil
	}

	// Flat form: every value must be a digest string.
	entries, err := decodeFlat(raw)
	if err != nil {
		return nil, zerr.With(formatError("checksums for version missing"), "version", version)
	}
	return entries, nil
}

// decodeFlat decodes a {path: digest} object and rejects an empty mapping.
func decodeFlat(data []byte) (map[string]string, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, formatError(err.Error())
	}
	if len(entries) == 0 {
		return nil, formatError("manifest has no entries")
	}
	return entries, nil
}

func formatError(reason string) error {
	return zerr.Wrap(domain.ErrManifestFormat, reason)
}
