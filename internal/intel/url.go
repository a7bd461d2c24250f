package intel

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveLink turns an anchor href into an absolute URL using the origin of
// the page it was found on. Already-absolute links pass through unchanged.
func ResolveLink(pageURL, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("resolve link: empty href")
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href, nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("resolve link: page url %q has no origin", pageURL)
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base.Scheme + "://" + base.Host + href, nil
}
