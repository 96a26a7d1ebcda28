package models

// UploadedImage is an accepted browser upload, fully buffered. The 10 MiB
// ceiling keeps buffering safe.
type UploadedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}
