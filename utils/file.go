package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// EnsureUploadDir creates the uploads directory if it doesn't exist
func EnsureUploadDir() error {
	return os.MkdirAll("uploads", os.ModePerm)
}

// SaveUpload stores an attachment either in R2 (when configured) or in the
// local uploads/ dir, returning the URL to record on the entity.
func SaveUpload(fileHeader *multipart.FileHeader, key string) (string, error) {
	if R2Configured() {
		return UploadFileToR2(fileHeader, key)
	}

	destPath := filepath.Join("uploads", key)
	if err := saveFile(fileHeader, destPath); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s", key), nil
}

// saveFile saves the uploaded file to the given destination path
func saveFile(fileHeader *multipart.FileHeader, destPath string) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	return err
}
