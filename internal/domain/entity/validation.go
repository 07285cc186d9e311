package entity

import (
	"fmt"
	"net"
	"net/url"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// lookupIP is replaced in tests to avoid DNS.
var lookupIP = net.LookupIP

// ValidateURL checks that rawURL is a well-formed absolute http(s) URL.
// When denyPrivate is true, hosts resolving to private or loopback addresses
// are rejected to prevent SSRF through user-supplied feed URLs.
func ValidateURL(rawURL string, denyPrivate bool) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "invalid URL format"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Hostname() == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	if !denyPrivate {
		return nil
	}

	// SSRF対策: プライベートIPアドレスをブロック
	host := parsedURL.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		if IsPrivateIP(ip) {
			return &ValidationError{Field: "url", Message: "url cannot point to private network"}
		}
		return nil
	}
	ips, err := lookupIP(host)
	if err == nil {
		for _, ip := range ips {
			if IsPrivateIP(ip) {
				return &ValidationError{Field: "url", Message: "url cannot point to private network"}
			}
		}
	}

	return nil
}

// IsPrivateIP checks if an IP address is in a private or restricted range:
// loopback, link-local (including cloud metadata), RFC 1918 and IPv6 ULA.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
		return true
	}
	return ip.IsPrivate()
}
