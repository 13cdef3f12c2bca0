package preview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"ideahub/internal/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const (
	userAgent   = "IdeaHubPreview/1.0 (+https://ideahub.app)"
	maxBodySize = 2 << 20
)

var (
	ErrInvalidURL = errors.New("invalid preview url")
	ErrEmptyPage  = errors.New("page has no preview metadata")
)

type Preview struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	SiteName    string    `json:"site_name"`
	Rendered    bool      `json:"rendered"`
	FetchedAt   time.Time `json:"fetched_at"`
}

func (p Preview) empty() bool {
	return p.Title == "" && p.Description == ""
}

// Fetcher reads page metadata with a static HTTP fetch, falling back to a
// headless browser for script-rendered pages when enabled.
type Fetcher struct {
	timeout  time.Duration
	headless bool
	logger   *log.Logger
	render   func(ctx context.Context, target string) (string, error)

	// blocked rejects destination IPs; nil allows every address.
	blocked func(net.IP) bool
}

func NewFetcher(cfg config.PreviewConfig, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	f := &Fetcher{timeout: timeout, headless: cfg.Headless, logger: logger, blocked: isBlockedIP}
	f.render = f.renderHeadless
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Preview, error) {
	target, err := f.validate(rawURL)
	if err != nil {
		return Preview{}, err
	}
	if err := ctx.Err(); err != nil {
		return Preview{}, err
	}

	p, err := f.fetchStatic(target)
	if err == nil && !p.empty() {
		return p, nil
	}
	if !f.headless {
		if err != nil {
			return Preview{}, err
		}
		return Preview{}, ErrEmptyPage
	}

	if errors.Is(err, ErrBlockedAddress) {
		return Preview{}, err
	}
	u, _ := url.Parse(target)
	if cerr := f.checkResolved(ctx, u.Hostname()); cerr != nil {
		return Preview{}, cerr
	}

	f.logger.Printf("[Preview] static fetch insufficient url=%s err=%v, rendering headless", target, err)
	html, rerr := f.render(ctx, target)
	if rerr != nil {
		return Preview{}, fmt.Errorf("render %s: %w", target, rerr)
	}
	doc, rerr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if rerr != nil {
		return Preview{}, fmt.Errorf("parse rendered html: %w", rerr)
	}
	p = extract(doc.Selection, target)
	p.Rendered = true
	if p.empty() {
		return Preview{}, ErrEmptyPage
	}
	return p, nil
}

func (f *Fetcher) fetchStatic(target string) (Preview, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxBodySize(maxBodySize),
		colly.MaxDepth(1),
	)
	c.WithTransport(f.transport())
	c.SetRequestTimeout(f.timeout)
	c.SetRedirectHandler(f.checkRedirect)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	var out Preview
	found := false
	c.OnHTML("html", func(e *colly.HTMLElement) {
		out = extract(e.DOM, e.Request.URL.String())
		found = true
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(target); err != nil {
		return Preview{}, err
	}
	c.Wait()
	if reqErr != nil {
		return Preview{}, reqErr
	}
	if !found {
		return Preview{}, ErrEmptyPage
	}
	return out, nil
}

func extract(doc *goquery.Selection, pageURL string) Preview {
	meta := func(selectors ...string) string {
		for _, sel := range selectors {
			if v, ok := doc.Find(sel).First().Attr("content"); ok {
				if v = collapse(v); v != "" {
					return v
				}
			}
		}
		return ""
	}

	p := Preview{
		URL:         pageURL,
		Title:       meta(`meta[property="og:title"]`, `meta[name="twitter:title"]`),
		Description: meta(`meta[property="og:description"]`, `meta[name="description"]`, `meta[name="twitter:description"]`),
		Image:       meta(`meta[property="og:image"]`, `meta[name="twitter:image"]`),
		SiteName:    meta(`meta[property="og:site_name"]`),
		FetchedAt:   time.Now().UTC(),
	}
	if p.Title == "" {
		p.Title = collapse(doc.Find("title").First().Text())
	}
	if p.Title == "" {
		p.Title = collapse(doc.Find("h1").First().Text())
	}
	if p.Image != "" {
		p.Image = absolute(pageURL, p.Image)
	}
	return p
}

func (f *Fetcher) validate(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", ErrInvalidURL
	}
	if err := f.checkHost(u.Hostname()); err != nil {
		return "", ErrInvalidURL
	}
	u.Fragment = ""
	return u.String(), nil
}

func absolute(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
