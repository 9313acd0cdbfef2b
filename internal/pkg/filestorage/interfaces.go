package filestorage

import (
	"mime/multipart"
)

// AudioDir is the storage subdirectory for narration uploads
const AudioDir = "audio"

// FileStorage stores uploaded files and hands back a reference URL
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath and returns its URL
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file by its URL
	DeleteFile(fileURL string) error

	// GetFullPath resolves a stored URL to its filesystem location
	GetFullPath(fileURL string) string
}
