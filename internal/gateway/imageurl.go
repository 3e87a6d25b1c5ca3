package gateway

import (
	"net/url"
	"strings"
)

// ResolveImageURL turns a photo reference returned by the backend into a fetchable URL.
// References that already carry a scheme are returned verbatim; anything else is joined
// to baseURL with its leading slash stripped. Empty references resolve to "".
func ResolveImageURL(baseURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(ref, "/")
}

// ImageURL resolves ref against the client's base URL.
func (c *Client) ImageURL(ref string) string {
	return ResolveImageURL(c.config.BaseURL, ref)
}
