package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medfi-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUploaderValidatesConfig(t *testing.T) {
	_, err := NewUploader(config.CloudinaryConfig{UploadPreset: "preset"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLOUDINARY_CLOUD_NAME")

	_, err = NewUploader(config.CloudinaryConfig{CloudName: "demo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLOUDINARY_UPLOAD_PRESET")

	_, err = NewUploader(config.CloudinaryConfig{CloudName: "demo", UploadPreset: "preset"})
	assert.NoError(t, err)
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/demo/image/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "preset", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "id.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url": "https://res.cloudinary.com/demo/image/upload/abc.jpg"}`))
	}))
	defer server.Close()

	uploader, err := NewUploader(config.CloudinaryConfig{CloudName: "demo", UploadPreset: "preset"})
	require.NoError(t, err)
	uploader.baseURL = server.URL

	url, err := uploader.Upload(context.Background(), "id.jpg", []byte("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/abc.jpg", url)
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "Upload preset not found"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	uploader, err := NewUploader(config.CloudinaryConfig{CloudName: "demo", UploadPreset: "preset"})
	require.NoError(t, err)
	uploader.baseURL = server.URL

	_, err = uploader.Upload(context.Background(), "id.jpg", []byte("image-bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestUploadMissingSecureURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	uploader, err := NewUploader(config.CloudinaryConfig{CloudName: "demo", UploadPreset: "preset"})
	require.NoError(t, err)
	uploader.baseURL = server.URL

	_, err = uploader.Upload(context.Background(), "id.jpg", []byte("image-bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_url")
}
