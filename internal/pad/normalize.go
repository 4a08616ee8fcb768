package pad

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultBaseURL is the public host that serves processed card images.
const DefaultBaseURL = "https://pad.crc.nd.edu"

// serverDocRoot is the filesystem prefix the upstream server stores image
// paths under; stripping it yields the public URL path.
const serverDocRoot = "/var/www/html"

// displayTimeFormat renders timestamps as DD/MM/YYYY hh:mm AM/PM.
const displayTimeFormat = "02/01/2006 03:04 PM"

// timestampLayouts are tried in order when parsing a creation timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CardFromRecord normalizes one raw row into a fully populated Card. It is
// total: any row, whatever columns it carries, yields a renderable Card.
func CardFromRecord(r Record, baseURL string) Card {
	return Card{
		ID:             r.Int(cardIDColumns, 0),
		SampleID:       r.Int64Ptr(sampleIDColumns),
		SampleName:     r.String(sampleNameColumns, "Unknown"),
		ProjectName:    r.String(cardProjectColumns, "Unknown"),
		UserName:       r.String(cardUserColumns, "Unknown"),
		DateOfCreation: FormatTimestamp(r.String(DateColumns, "")),
		Quantity:       r.Float64Ptr(quantityColumns),
		Notes:          ParseNotes(r.String(notesColumns, "")),
		ImageURL:       ImageURL(r.String(imageColumns, ""), baseURL),
		CameraType:     r.String(cameraColumns, ""),
	}
}

// FormatTimestamp re-renders an ISO-8601 timestamp (a trailing "Z" reads as
// UTC) in display form. Anything that does not parse passes through
// unchanged.
func FormatTimestamp(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayTimeFormat)
		}
	}
	return s
}

// ImageURL converts a stored server-local image path into a public URL.
// Returns "" for an empty path.
func ImageURL(path, baseURL string) string {
	if path == "" {
		return ""
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	path = strings.TrimPrefix(path, serverDocRoot)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}

// ParseNotes decodes a card's notes blob. A missing blob yields nil; a blob
// that is not a JSON object with the expected keys yields a Notes carrying
// only the raw text.
func ParseNotes(s string) *Notes {
	if s == "" {
		return nil
	}
	var n Notes
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return &Notes{Raw: s}
	}
	return &n
}
