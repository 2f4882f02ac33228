package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateMultipartBody encodes fields and, when fileName is set, a "file" part
// holding content. It returns the body and its Content-Type header.
func CreateMultipartBody(t *testing.T, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var b bytes.Buffer
	writer := multipart.NewWriter(&b)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		fileWriter, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fileWriter.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &b, writer.FormDataContentType()
}
