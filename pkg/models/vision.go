package models

// UploadedImage is an image received from the upload control.
type UploadedImage struct {
	Filename string
	MIMEType string
	Data     []byte
}

// GenerationRequest is the input of the image description pipeline. Prompt
// may be empty; Image must be present before the provider is called.
type GenerationRequest struct {
	Prompt string
	Image  *UploadedImage
}

// GenerationResponse carries the provider text exactly as returned.
type GenerationResponse struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

// DescriptionResult is what the description pipeline hands back to the UI.
type DescriptionResult struct {
	Prompt         string          `json:"prompt"`
	Text           string          `json:"text"`
	Model          string          `json:"model,omitempty"`
	ImageMIMEType  string          `json:"image_mime_type"`
	PreviewDataURL string          `json:"-"`
	Messages       []StatusMessage `json:"messages"`
}
