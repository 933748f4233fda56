package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known applicant tracking system hosting job postings.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformAshby is the Ashby ATS platform
	PlatformAshby Platform = "ashby"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// Selectors lists the CSS selectors that locate posting fields on a platform, most specific first.
type Selectors struct {
	Title       []string
	Company     []string
	Description []string
	Noise       []string
}

type platformRule struct {
	hosts     []string
	selectors Selectors
}

var platformRules = map[Platform]platformRule{
	PlatformGreenhouse: {
		hosts: []string{"greenhouse.io"},
		selectors: Selectors{
			Title:       []string{".app-title", ".job__title h1", "h1.section-header"},
			Company:     []string{".company-name", ".job__header .company"},
			Description: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
			Noise:       []string{"form", ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
		},
	},
	PlatformLever: {
		hosts: []string{"lever.co"},
		selectors: Selectors{
			Title:       []string{".posting-headline h2"},
			Description: []string{".posting-page .section-wrapper.page-full-width", ".posting-description", ".content"},
			Noise:       []string{"form", ".apply-section", ".lever-application-form", ".posting-apply"},
		},
	},
	PlatformWorkday: {
		hosts: []string{"workday.com", "myworkdayjobs.com"},
		selectors: Selectors{
			Title:       []string{"[data-automation-id='jobPostingHeader']"},
			Company:     []string{"[data-automation-id='company']"},
			Description: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
			Noise:       []string{"[data-automation-id='applyButton']", ".application-section"},
		},
	},
	PlatformAshby: {
		hosts: []string{"ashbyhq.com"},
		selectors: Selectors{
			Title:       []string{".ashby-job-posting-heading", "h1"},
			Description: []string{".ashby-job-posting-left-pane", "[class*='_descriptionText']"},
			Noise:       []string{".ashby-application-form-container"},
		},
	},
}

// commonNoise is removed on every platform. A bare "form" is left out because some sites
// wrap the whole page in one.
var commonNoise = []string{
	"#application-form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".voluntary-disclosure",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for platform, rule := range platformRules {
		for _, suffix := range rule.hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return platform
			}
		}
	}

	return PlatformUnknown
}

// PlatformSelectors returns the selectors for a platform. Unknown platforms only carry common noise.
func PlatformSelectors(platform Platform) Selectors {
	rule, ok := platformRules[platform]
	if !ok {
		return Selectors{Noise: append([]string(nil), commonNoise...)}
	}

	s := rule.selectors
	s.Noise = append(append([]string(nil), commonNoise...), s.Noise...)
	return s
}
