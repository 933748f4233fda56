package fetch

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest description accepted from static HTML before
// a browser render is attempted.
const MinContentLength = 500

// ShouldUseBrowser reports whether text extracted from static HTML is too short to trust,
// which usually means the page is rendered client-side.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns the HTML of a page after client-side scripts have run.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserRenderer renders pages in headless Chrome. Requires Chrome/Chromium on the host.
type BrowserRenderer struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready for scripts to populate the page.
	Settle  time.Duration
	Verbose bool
}

// NewBrowserRenderer returns a renderer with the given timeout and a 3s settle delay.
func NewBrowserRenderer(timeout time.Duration, verbose bool) *BrowserRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserRenderer{Timeout: timeout, Settle: 3 * time.Second, Verbose: verbose}
}

// Render navigates to url and returns the rendered document HTML.
func (b *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	if b.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(BrowserUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	if b.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}

