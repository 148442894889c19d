package infrastructure

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParsedURL holds the components of an absolute URL.
type ParsedURL struct {
	Href     string              `json:"href"`
	Protocol string              `json:"protocol"`
	Origin   string              `json:"origin"`
	Username string              `json:"username"`
	Password string              `json:"password"`
	Host     string              `json:"host"`
	Hostname string              `json:"hostname"`
	Port     string              `json:"port"`
	Pathname string              `json:"pathname"`
	Search   string              `json:"search"`
	Hash     string              `json:"hash"`
	Query    map[string][]string `json:"query"`
}

// URLParser splits absolute URLs into their components.
type URLParser struct{}

// NewURLParser creates a new URLParser.
func NewURLParser() *URLParser {
	return &URLParser{}
}

// Parse parses raw, which must carry a scheme and a host.
func (p *URLParser) Parse(raw string) (*ParsedURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("invalid URL: input is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: an absolute URL with scheme and host is required", raw)
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid URL query: %w", err)
	}

	parsed := &ParsedURL{
		Href:     u.String(),
		Protocol: u.Scheme + ":",
		Origin:   u.Scheme + "://" + u.Host,
		Host:     u.Host,
		Hostname: u.Hostname(),
		Port:     u.Port(),
		Pathname: u.EscapedPath(),
		Query:    query,
	}
	if parsed.Pathname == "" {
		parsed.Pathname = "/"
	}
	if u.User != nil {
		parsed.Username = u.User.Username()
		parsed.Password, _ = u.User.Password()
	}
	if u.RawQuery != "" {
		parsed.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		parsed.Hash = "#" + u.EscapedFragment()
	}
	return parsed, nil
}
