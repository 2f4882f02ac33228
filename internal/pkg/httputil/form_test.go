//go:build unit
// +build unit

package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormWithFields(t *testing.T) {
	form, err := CreateFormWithFields([]byte("%PDF-1.4"), "diploma.pdf", map[string]string{"title": "Diploma"})
	require.NoError(t, err)

	require.Len(t, form.File["file"], 1)
	assert.Equal(t, "diploma.pdf", form.File["file"][0].Filename)
	assert.Equal(t, []string{"Diploma"}, form.Value["title"])
}

func TestReadFile(t *testing.T) {
	content := []byte("official transcript")
	form, err := CreateForm(content, "transcript.txt")
	require.NoError(t, err)

	data, err := ReadFile(form.File["file"][0], 1024)
	require.NoError(t, err)
	assert.Equal(t, content, data)

	_, err = ReadFile(form.File["file"][0], 4)
	assert.Error(t, err)
}
