package core

// Attachment represents a debug artifact captured around a test case.
type Attachment struct {
	Name        string `json:"name"`        // descriptive name: screenshot, hierarchy
	ContentType string `json:"contentType"` // MIME type
	Path        string `json:"path"`        // relative to the output directory
	Body        []byte `json:"-"`           // in-memory content, never serialized
}

// Common attachment names.
const (
	AttachmentScreenshot = "screenshot"
	AttachmentHierarchy  = "hierarchy"
)

// Common content types.
const (
	ContentTypePNG  = "image/png"
	ContentTypeJSON = "application/json"
)

// NewScreenshotAttachment creates a screenshot attachment.
func NewScreenshotAttachment(path string, data []byte) Attachment {
	return Attachment{
		Name:        AttachmentScreenshot,
		ContentType: ContentTypePNG,
		Path:        path,
		Body:        data,
	}
}

// NewHierarchyAttachment creates an accessibility tree dump attachment.
func NewHierarchyAttachment(path string, data []byte) Attachment {
	return Attachment{
		Name:        AttachmentHierarchy,
		ContentType: ContentTypeJSON,
		Path:        path,
		Body:        data,
	}
}

// ArtifactMode determines when screenshots and tree dumps are captured.
type ArtifactMode int

const (
	// ArtifactOnFailure captures artifacts only when a case fails or errors.
	ArtifactOnFailure ArtifactMode = iota
	// ArtifactAlways captures artifacts after every case.
	ArtifactAlways
	// ArtifactNever disables artifact capture.
	ArtifactNever
)
