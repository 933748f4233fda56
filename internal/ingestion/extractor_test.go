package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/mindwise/internal/fetch"
)

const requirements = "We are looking for a backend engineer with strong Go experience, " +
	"PostgreSQL tuning skills and a track record of running services in production."

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fetch.BrowserUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtract_SelectorTier(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head><title>Careers | Acme</title><script>window.x = 1</script></head>
<body>
<nav>Home Jobs About</nav>
<header>Acme careers header</header>
<h1> Senior Backend Engineer </h1>
<div class="company-name">Acme Corp</div>
<div class="job-description">
<h2>About the role</h2>
<p>` + requirements + `</p>
<p>` + requirements + `</p>
</div>
<aside>Similar jobs</aside>
<footer>Copyright</footer>
</body>
</html>`
	server := serveHTML(t, html)

	posting, err := NewExtractor(0).Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", posting.Title)
	assert.Equal(t, "Acme Corp", posting.Company)
	assert.Equal(t, "About the role\n"+requirements, posting.Description, "consecutive duplicate lines collapse")
	assert.Equal(t, fetch.PlatformUnknown, posting.Platform)
	for _, noise := range []string{"Home Jobs", "careers header", "Similar jobs", "Copyright", "window.x"} {
		assert.NotContains(t, posting.Description, noise)
	}
}

func TestExtractFromHTML_Placeholders(t *testing.T) {
	html := `<html><body><main><p>` + requirements + `</p></main></body></html>`

	posting, err := ExtractFromHTML(html, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, TitleNotFound, posting.Title)
	assert.Equal(t, CompanyNotFound, posting.Company)
	assert.Equal(t, requirements, posting.Description)
}

func TestExtractFromHTML_TitleFallsBackToTitleTag(t *testing.T) {
	html := `<html><head><title>Platform Engineer - Initech</title></head>
<body><h1>   </h1><article>` + requirements + `</article></body></html>`

	posting, err := ExtractFromHTML(html, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer - Initech", posting.Title)
}

func TestExtractFromHTML_ShortSelectorMatchFallsThrough(t *testing.T) {
	// The first description-like element is too short, so a later selector wins.
	html := `<html><body>
<div class="job-description">Apply now</div>
<article>` + requirements + `</article>
</body></html>`

	posting, err := ExtractFromHTML(html, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, requirements, posting.Description)
}

func TestExtractFromHTML_LengthMeasuredBeforeCleaning(t *testing.T) {
	// 149 characters as extracted, 29 once repeated lines collapse.
	html := `<html><body><div class="job-description">` +
		strings.Repeat("<p>Apply now for this role today</p>", 5) +
		`</div></body></html>`

	posting, err := ExtractFromHTML(html, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "Apply now for this role today", posting.Description)
}

func TestExtractFromHTML_BlockScanTier(t *testing.T) {
	long := strings.Repeat("Build and operate distributed systems. ", 20)
	html := `<html><body>
<div id="x"><span>tiny</span></div>
<section>` + long + `</section>
</body></html>`

	posting, err := ExtractFromHTML(html, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(long), posting.Description)
}

func TestExtractFromHTML_BodyTier(t *testing.T) {
	html := `<html><body><p>` + requirements + `</p></body></html>`

	posting, err := ExtractFromHTML(html, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, requirements, posting.Description)
}

func TestExtractFromHTML_NothingFound(t *testing.T) {
	_, err := ExtractFromHTML(`<html><body><p>Too little</p></body></html>`, "https://example.com/jobs/1")

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, err.Error(), "could not extract job description")
}

func TestExtractFromHTML_GreenhouseSelectorsFirst(t *testing.T) {
	html := `<html><body>
<div class="app-title">Staff Engineer</div>
<h1>Greenhouse Job Board</h1>
<div class="company-name">Acme</div>
<div class="content">Generic content block that should not be chosen because the platform selector matches first and is long enough anyway, padding padding.</div>
<div class="job__description body">` + requirements + `</div>
<form id="application"><label>First Name</label><input name="first_name"></form>
</body></html>`

	posting, err := ExtractFromHTML(html, "https://boards.greenhouse.io/acme/jobs/42")
	require.NoError(t, err)
	assert.Equal(t, fetch.PlatformGreenhouse, posting.Platform)
	assert.Equal(t, "Staff Engineer", posting.Title)
	assert.Equal(t, requirements, posting.Description)
}

func TestExtract_HTTPErrorIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewExtractor(0).Extract(context.Background(), server.URL)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "403")
}

func TestExtract_InvalidURLIsFetchError(t *testing.T) {
	_, err := NewExtractor(0).Extract(context.Background(), "not a url")
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (s *stubRenderer) Render(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.html, s.err
}

func TestExtract_BrowserFallback(t *testing.T) {
	server := serveHTML(t, `<html><body><div id="root"></div></body></html>`)

	long := strings.Repeat("Own the ingestion pipeline end to end. ", 20)
	renderer := &stubRenderer{html: `<html><body><h1>Data Engineer</h1><main>` + long + `</main></body></html>`}
	e := NewExtractor(0)
	e.Renderer = renderer

	posting, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, "Data Engineer", posting.Title)
	assert.Equal(t, strings.TrimSpace(long), posting.Description)
}

func TestExtract_BrowserNotUsedForLongStaticContent(t *testing.T) {
	long := strings.Repeat("Design resilient storage systems. ", 20)
	server := serveHTML(t, `<html><body><main>`+long+`</main></body></html>`)

	renderer := &stubRenderer{}
	e := NewExtractor(0)
	e.Renderer = renderer

	_, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 0, renderer.calls)
}

func TestExtract_BrowserFailureKeepsStaticError(t *testing.T) {
	server := serveHTML(t, `<html><body><div id="root"></div></body></html>`)

	e := NewExtractor(0)
	e.Renderer = &stubRenderer{err: errors.New("chrome not installed")}

	_, err := e.Extract(context.Background(), server.URL)
	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}
