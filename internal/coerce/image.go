package coerce

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// ResolveImageSource picks the effective source of an image block:
// a well-formed uploaded data-URI, then a newly entered external URL,
// then the stored value if it is a valid data-URI or external URL,
// then fallback.
func ResolveImageSource(upload, enteredURL string, stored any, fallback string) string {
	if IsImageDataURI(upload) {
		return upload
	}
	if u := strings.TrimSpace(enteredURL); IsExternalURL(u) {
		return u
	}
	if s, ok := stored.(string); ok {
		if IsImageDataURI(s) {
			return s
		}
		if IsExternalURL(s) {
			return s
		}
	}
	return fallback
}

// IsImageDataURI reports whether s is data:image/<subtype>;base64,<payload>
// with a decodable payload.
func IsImageDataURI(s string) bool {
	if !strings.HasPrefix(s, "data:image/") {
		return false
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok || payload == "" || !strings.HasSuffix(header, ";base64") {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(payload)
	return err == nil
}

// IsExternalURL reports whether s is an absolute http(s) URL.
func IsExternalURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
