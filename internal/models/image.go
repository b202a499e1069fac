package models

import "io"

// ImageUpload is a profile image received in a multipart request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
