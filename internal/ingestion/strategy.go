package ingestion

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/mindwise/internal/fetch"
)

// Placeholders returned when no title or company selector matches.
const (
	TitleNotFound   = "Job Title Not Found"
	CompanyNotFound = "Company Not Found"
)

// strategy is one extraction attempt: a selector and the predicate its text must satisfy.
// With scanAll unset only the first matching element is considered, otherwise every match
// is tried in document order.
type strategy struct {
	selector string
	accept   func(text string) bool
	scanAll  bool
	inline   bool
}

func nonEmpty(text string) bool { return text != "" }

func longerThan(n int) func(string) bool {
	return func(text string) bool { return utf8.RuneCountInString(text) > n }
}

func between(lo, hi int) func(string) bool {
	return func(text string) bool {
		n := utf8.RuneCountInString(text)
		return n > lo && n < hi
	}
}

var titleSelectors = []string{
	"h1",
	`[class*="job-title"]`,
	`[class*="jobTitle"]`,
	`[data-testid="job-title"]`,
	"title",
}

var companySelectors = []string{
	`[class*="company-name"]`,
	`[class*="companyName"]`,
	`[class*="employer"]`,
	`[data-testid="company-name"]`,
}

var descriptionSelectors = []string{
	`[class*="job-description"]`,
	`[class*="jobDescription"]`,
	`[class*="job_description"]`,
	`[id*="job-description"]`,
	`[id*="jobDescription"]`,
	`[class*="description"]`,
	`[class*="job-details"]`,
	`[class*="jobDetails"]`,
	`[class*="job-content"]`,
	`[class*="content"]`,
	"article",
	"main",
	`[role="main"]`,
	".job-desc",
	"#job-desc",
	".description",
	"#description",
}

// inlineStrategies builds single-line field strategies, platform selectors first.
func inlineStrategies(platformSelectors, generic []string) []strategy {
	out := make([]strategy, 0, len(platformSelectors)+len(generic))
	for _, sel := range append(append([]string(nil), platformSelectors...), generic...) {
		out = append(out, strategy{selector: sel, accept: nonEmpty, inline: true})
	}
	return out
}

// descriptionStrategies tries known containers, then any plausibly sized block, then the whole body.
func descriptionStrategies(platformSelectors []string) []strategy {
	out := make([]strategy, 0, len(platformSelectors)+len(descriptionSelectors)+2)
	for _, sel := range append(append([]string(nil), platformSelectors...), descriptionSelectors...) {
		out = append(out, strategy{selector: sel, accept: longerThan(100)})
	}
	return append(out,
		strategy{selector: "div, section", accept: between(500, 20000), scanAll: true},
		strategy{selector: "body", accept: longerThan(100)},
	)
}

// firstMatch evaluates strategies in order and returns the first accepted text.
// Block text is measured before cleaning and cleaned only once accepted.
func firstMatch(doc *goquery.Document, strategies []strategy) (string, bool) {
	for _, s := range strategies {
		matches := doc.Find(s.selector)
		if matches.Length() == 0 {
			continue
		}
		if !s.scanAll {
			matches = matches.First()
		}

		var found string
		matches.EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := textOf(el, s.inline)
			if s.accept(text) {
				found = text
				if !s.inline {
					found = fetch.CleanText(text)
				}
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func textOf(el *goquery.Selection, inline bool) string {
	if inline {
		return fetch.InlineText(el)
	}
	return fetch.RawSelectionText(el)
}
