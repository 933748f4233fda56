package resume

import (
	"net/url"
	"regexp"
)

// DefaultDownloadBase is the Google Drive direct-download endpoint.
const DefaultDownloadBase = "https://drive.google.com/uc"

var (
	// /file/d/<id>/view, /file/d/<id>/edit, /file/u/0/d/<id>
	filePathPattern = regexp.MustCompile(`/file/(?:u/\d+/)?d/([a-zA-Z0-9_-]+)`)
	// open?id=<id>, uc?id=<id>, ...&id=<id>
	idParamPattern = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// ParseFileID recovers the document identifier from a sharing link.
func ParseFileID(link string) (string, error) {
	if m := filePathPattern.FindStringSubmatch(link); m != nil {
		return m[1], nil
	}
	if m := idParamPattern.FindStringSubmatch(link); m != nil {
		return m[1], nil
	}
	return "", &InvalidLinkError{Link: link, Message: "could not extract file ID"}
}

// DownloadURL builds the direct-download URL for a file identifier.
func DownloadURL(base, fileID string) string {
	if base == "" {
		base = DefaultDownloadBase
	}
	q := url.Values{}
	q.Set("export", "download")
	q.Set("id", fileID)
	return base + "?" + q.Encode()
}
