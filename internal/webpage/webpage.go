// Package webpage fetches a page and extracts the details the SEO analyzer prompts with.
package webpage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
)

const (
	userAgent    = "clio/1.0 (SEO analyzer)"
	maxBodyBytes = 2 << 20
	maxRedirects = 5
)

// ErrBlockedAddress is returned when a page resolves to an address that is not publicly routable.
var ErrBlockedAddress = errors.New("address is not publicly routable")

// Fetcher implements contract.PageFetcher over HTTP.
type Fetcher struct {
	client *http.Client
}

var _ contract.PageFetcher = &Fetcher{} // Compile-time check

// NewFetcher returns a Fetcher whose requests time out after timeout.
// Connections to loopback, private, link-local and unspecified addresses are refused
// after DNS resolution, so redirects to them fail as well.
func NewFetcher(timeout time.Duration) *Fetcher {
	return newFetcher(timeout, guardPublicAddress)
}

// newFetcher builds the client around a dial control hook; nil allows every address.
func newFetcher(timeout time.Duration, control func(network, address string, c syscall.RawConn) error) *Fetcher {
	dialer := &net.Dialer{Timeout: timeout, Control: control}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.Proxy = nil // a proxy would dial the target on our behalf
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// guardPublicAddress rejects dials to addresses that are not publicly routable.
func guardPublicAddress(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

// cgnat is the shared address space of carrier-grade NAT (RFC 6598).
var cgnat = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

func isPublicIP(ip net.IP) bool {
	switch {
	case ip.IsLoopback(), ip.IsPrivate(), ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast(),
		cgnat.Contains(ip):
		return false
	}
	return true
}

// Fetch downloads url and summarizes its HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (schema.PageSummary, error) {
	summary := schema.PageSummary{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return summary, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return summary, fmt.Errorf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}

	return Summarize(url, io.LimitReader(resp.Body, maxBodyBytes))
}

// Summarize extracts title, meta description, headings and word count from HTML.
func Summarize(url string, r io.Reader) (schema.PageSummary, error) {
	summary := schema.PageSummary{URL: url}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return summary, fmt.Errorf("failed to parse HTML: %w", err)
	}

	summary.Title = collapse(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		summary.MetaDescription = collapse(desc)
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			summary.Headings = append(summary.Headings, text)
		}
	})
	summary.WordCount = len(strings.Fields(doc.Find("body").Text()))

	return summary, nil
}

// collapse trims text and folds inner whitespace runs to one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
