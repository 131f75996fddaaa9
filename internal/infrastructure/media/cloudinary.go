package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"medfi-backend/config"
)

// Uploader sends image bytes to the Cloudinary unsigned-upload endpoint
// and returns the permanent URL. The media store exposes no delete or
// replace operation; re-uploads simply orphan the previous asset.
type Uploader struct {
	cloudName    string
	uploadPreset string
	baseURL      string
	httpClient   *http.Client
}

// NewUploader validates the credentials up front so a missing env value
// fails at startup instead of on the first upload.
func NewUploader(cfg config.CloudinaryConfig) (*Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Uploader{
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		baseURL:      "https://api.cloudinary.com/v1_1",
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload posts the file as multipart form data with the unsigned preset
// and returns the secure URL of the stored asset.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("upload_preset", u.uploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload failed: %d %s", resp.StatusCode, string(text))
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	return result.SecureURL, nil
}
