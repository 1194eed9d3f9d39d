package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Claims is the decoded middle segment of a bearer token. Only expiry is
// inspected here; signature verification is the backend's responsibility.
type Claims struct {
	// Exp is seconds since epoch. A pointer so "claim absent" is
	// distinguishable from zero.
	Exp     *float64 `json:"exp"`
	Subject string   `json:"sub,omitempty"`
	Email   string   `json:"email,omitempty"`
}

// decodeClaims extracts the claims segment of a bearer token without
// verifying the signature. The token is split on "."; the second segment is
// converted from the base64url alphabet to standard base64, decoded, and
// parsed as a JSON object. Any failure along the way returns ok=false; a
// malformed token must read as "not logged in", never as an error.
func decodeClaims(token string) (*Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, false
	}

	seg := strings.ReplaceAll(parts[1], "-", "+")
	seg = strings.ReplaceAll(seg, "_", "/")
	seg = strings.TrimRight(seg, "=")

	raw, err := base64.RawStdEncoding.DecodeString(seg)
	if err != nil {
		return nil, false
	}
	if !utf8.Valid(raw) {
		return nil, false
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, false
	}
	return &claims, true
}
