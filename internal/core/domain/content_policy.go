package domain

import "fmt"

// ContentPolicy selects how a document's content is retrieved and returned.
type ContentPolicy string

const (
	// PolicyPassthrough returns the fetched content verbatim as text.
	PolicyPassthrough ContentPolicy = "passthrough"
	// PolicyOfficePayload returns the fetched Office payload unprocessed.
	// No text extraction is performed.
	PolicyOfficePayload ContentPolicy = "office-payload"
	// PolicyPDFPlaceholder fetches the content but returns PDFPlaceholder.
	PolicyPDFPlaceholder ContentPolicy = "pdf-placeholder"
	// PolicyUnsupported skips the content call and returns UnsupportedMessage.
	PolicyUnsupported ContentPolicy = "unsupported"
)

// PDFPlaceholder is returned in place of PDF content.
const PDFPlaceholder = "PDF content would be extracted here"

var policiesByType = map[string]ContentPolicy{
	"txt":  PolicyPassthrough,
	"html": PolicyPassthrough,
	"md":   PolicyPassthrough,
	"json": PolicyPassthrough,
	"csv":  PolicyPassthrough,
	"docx": PolicyOfficePayload,
	"xlsx": PolicyOfficePayload,
	"pptx": PolicyOfficePayload,
	"pdf":  PolicyPDFPlaceholder,
}

// PolicyFor returns the policy for a normalised file type (see FileType).
func PolicyFor(fileType string) ContentPolicy {
	if p, ok := policiesByType[fileType]; ok {
		return p
	}
	return PolicyUnsupported
}

// FetchesContent reports whether the policy needs the content download.
func (p ContentPolicy) FetchesContent() bool {
	return p != PolicyUnsupported
}

// UnsupportedMessage is the content returned for PolicyUnsupported.
func UnsupportedMessage(fileType string) string {
	return fmt.Sprintf("Content extraction not supported for file type: %s", fileType)
}
