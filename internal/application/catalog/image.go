package catalog

import "context"

// ImageUploader publishes product images and returns a public URL.
// Implementations live in the infrastructure layer (Telegram, S3).
type ImageUploader interface {
	// Upload publishes raw image bytes
	Upload(ctx context.Context, data []byte, filename string) (string, error)

	// UploadFromURL fetches an image from a URL and publishes it
	UploadFromURL(ctx context.Context, sourceURL string) (string, error)

	// UploadFromBase64 decodes a base64 image (optionally a data URI) and publishes it
	UploadFromBase64(ctx context.Context, encoded string) (string, error)
}

// ImageFile is an uploaded image payload
type ImageFile struct {
	Data     []byte
	Filename string
}

// ImageInput carries at most one image source for a product write.
// When several are set, File wins over Base64, and Base64 over SourceURL.
type ImageInput struct {
	File      *ImageFile
	Base64    string
	SourceURL string
}

// IsEmpty returns true if no image source was supplied
func (in ImageInput) IsEmpty() bool {
	return (in.File == nil || len(in.File.Data) == 0) && in.Base64 == "" && in.SourceURL == ""
}
