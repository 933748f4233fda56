// Package resume downloads resumes shared as Google Drive links and extracts their text.
package resume

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/mindwise/internal/fetch"
)

// DefaultTimeout bounds each download request.
const DefaultTimeout = 30 * time.Second

// MinTextLength is the shortest extracted text accepted as a readable resume.
const MinTextLength = 50

var confirmTokenPattern = regexp.MustCompile(`confirm=([0-9A-Za-z_-]+)`)

// Extractor resolves sharing links, downloads the document and returns its text.
type Extractor struct {
	// BaseURL is the direct-download endpoint; defaults to DefaultDownloadBase.
	BaseURL string
	Timeout time.Duration
	// TempDir holds the transient download; empty means os.TempDir().
	TempDir  string
	PageText PageTextFunc
	Verbose  bool
}

// NewExtractor creates an extractor that parses PDFs with PDFPageText.
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		BaseURL:  DefaultDownloadBase,
		Timeout:  timeout,
		PageText: PDFPageText,
	}
}

// Extract returns the plain text of the document behind link.
// Exactly one temporary file is created per download and it is removed on every exit path.
func (e *Extractor) Extract(ctx context.Context, link string) (string, error) {
	fileID, err := ParseFileID(link)
	if err != nil {
		return "", err
	}

	body, err := e.download(ctx, DownloadURL(e.BaseURL, fileID))
	if err != nil {
		return "", err
	}

	text, err := e.extractText(body)
	if err != nil {
		return "", err
	}

	if e.Verbose {
		log.Printf("[RESUME] Extracted %d characters from file %s", len(text), fileID)
	}
	return text, nil
}

// download fetches the document, following the confirmation page Drive serves for large files.
func (e *Extractor) download(ctx context.Context, downloadURL string) ([]byte, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, &FetchError{Message: "failed to create cookie jar", Cause: err}
	}
	opts := &fetch.Options{
		Timeout:   e.Timeout,
		UserAgent: fetch.BrowserUserAgent,
		Client:    &http.Client{Jar: jar},
	}

	res, err := fetch.URL(ctx, downloadURL, opts)
	if err != nil {
		return nil, &FetchError{Message: "failed to download resume", Cause: err}
	}

	if !res.IsPDF() && res.IsHTML() {
		if next := confirmURL(res.HTML(), downloadURL); next != "" {
			if e.Verbose {
				log.Printf("[RESUME] Following download confirmation")
			}
			res, err = fetch.URL(ctx, next, opts)
			if err != nil {
				return nil, &FetchError{Message: "failed to download resume after confirmation", Cause: err}
			}
		}
	}

	if !res.IsPDF() {
		return nil, &ExtractionError{Message: "downloaded file is not a PDF (is the link shared publicly?)"}
	}

	if e.Verbose {
		log.Printf("[RESUME] Downloaded %d bytes", len(res.Body))
	}
	return res.Body, nil
}

// extractText writes body to a temporary file, reads its pages and removes the file.
func (e *Extractor) extractText(body []byte) (string, error) {
	tmp, err := os.CreateTemp(e.TempDir, "resume-*.pdf")
	if err != nil {
		return "", &ExtractionError{Message: "failed to create temporary file", Cause: err}
	}
	path := tmp.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[RESUME] Warning: failed to remove temporary file %s: %v", path, err)
		} else if e.Verbose {
			log.Printf("[RESUME] Removed temporary file %s", path)
		}
	}()

	_, writeErr := tmp.Write(body)
	closeErr := tmp.Close()
	if writeErr != nil {
		return "", &ExtractionError{Message: "failed to write temporary file", Cause: writeErr}
	}
	if closeErr != nil {
		return "", &ExtractionError{Message: "failed to write temporary file", Cause: closeErr}
	}

	pageText := e.PageText
	if pageText == nil {
		pageText = PDFPageText
	}
	pages, err := pageText(path)
	if err != nil {
		return "", &ExtractionError{Message: "failed to extract text from PDF", Cause: err}
	}

	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if utf8.RuneCountInString(text) < MinTextLength {
		return "", &ExtractionError{Message: "extracted resume text is too short or empty"}
	}

	return text, nil
}

// confirmURL finds the follow-up download URL on a Drive confirmation page.
// Newer pages carry a #download-form whose hidden inputs form the query; older pages embed confirm=<token>.
func confirmURL(page, downloadURL string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page)); err == nil {
		form := doc.Find("form#download-form").First()
		if action, ok := form.Attr("action"); ok && action != "" {
			q := url.Values{}
			form.Find("input[type='hidden']").Each(func(_ int, input *goquery.Selection) {
				name, _ := input.Attr("name")
				value, _ := input.Attr("value")
				if name != "" {
					q.Set(name, value)
				}
			})
			if q.Get("confirm") != "" {
				return resolveAction(downloadURL, action) + "?" + q.Encode()
			}
		}
	}

	if m := confirmTokenPattern.FindStringSubmatch(page); m != nil {
		return downloadURL + "&confirm=" + m[1]
	}
	return ""
}

func resolveAction(base, action string) string {
	b, err := url.Parse(base)
	if err != nil {
		return action
	}
	a, err := url.Parse(action)
	if err != nil {
		return action
	}
	resolved := b.ResolveReference(a)
	resolved.RawQuery = ""
	return resolved.String()
}
