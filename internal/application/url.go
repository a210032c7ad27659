package application

import (
	"errors"
	"net/url"
	"strings"
)

var errNoHost = errors.New("url has no host")

// NormalizeURL prepends https:// when raw has no http:// or https:// prefix.
// Only fetches and summaries use the normalized form; stored bookmarks keep
// the URL as submitted.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func parseTarget(normalized string) (*url.URL, error) {
	u, err := url.Parse(normalized)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errNoHost
	}
	return u, nil
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
