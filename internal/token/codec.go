// Package token decodes the payload segment of compact identity tokens.
//
// The decoder does not verify signatures: tokens are received directly from
// the identity provider over TLS during the code exchange, and the gateway
// can be configured to verify them against the provider's published keys
// before they reach this package.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
)

// GroupsClaim is the claim carrying the provider's group memberships.
const GroupsClaim = "cognito:groups"

// Claims holds the decoded payload of a compact token. Values are untyped;
// accessors normalize the claims the application cares about.
type Claims map[string]any

// Decode extracts and JSON-decodes the payload segment of a compact token
// (header.payload.signature). Any malformation is reported as a decode error;
// callers treat that as "role cannot be determined" rather than a fatal
// condition.
func Decode(raw string) (Claims, error) {
	segments := strings.Split(raw, ".")
	if len(segments) < 2 || segments[1] == "" {
		return nil, appErrors.Decode("token has no payload segment")
	}
	payload, err := decodeSegment(segments[1])
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDecode, "decode token payload")
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDecode, "parse token payload")
	}
	return claims, nil
}

// decodeSegment base64-decodes one token segment. Segments use the URL-safe
// alphabet and usually arrive unpadded; tolerate padded input as well.
func decodeSegment(seg string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(seg, "="))
}

// String returns the named claim as a string, or "" when absent or not a string.
func (c Claims) String(name string) string {
	s, _ := c[name].(string)
	return s
}

// Groups returns the normalized group memberships. The claim may arrive as a
// JSON array or as a single comma-separated string; either form yields a
// clean list, and an absent claim yields an empty one.
func (c Claims) Groups() []string {
	switch v := c[GroupsClaim].(type) {
	case []any:
		groups := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				groups = append(groups, s)
			}
		}
		return groups
	case string:
		parts := strings.Split(v, ",")
		groups := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				groups = append(groups, trimmed)
			}
		}
		return groups
	default:
		return []string{}
	}
}
