// Package httputil contains helpers for multipart payloads.
package httputil

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// DefaultMaxMemory is the in-memory budget used when parsing forms built here
const DefaultMaxMemory = 32 << 20

// CreateForm builds a parsed multipart form holding a single file under the "file" field.
func CreateForm(content []byte, fileName string) (*multipart.Form, error) {
	return CreateFormWithFields(content, fileName, nil)
}

// CreateFormWithFields builds a parsed multipart form with one file under "file"
// and the given text fields.
func CreateFormWithFields(content []byte, fileName string, fields map[string]string) (*multipart.Form, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(DefaultMaxMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	return form, nil
}

// ReadFile reads the whole content of a multipart file, refusing anything larger than maxSize.
func ReadFile(header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if header.Size > maxSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes", header.Filename, maxSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", header.Filename, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes", header.Filename, maxSize)
	}
	return data, nil
}
