package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

var imageHostClient = &http.Client{Timeout: 30 * time.Second}

type imageHostResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// UploadImage relays a picked image to the external hosting API and returns
// the public display URL. The endpoint is the full upload URL (imgbb-style);
// the API key travels as the key query parameter.
func UploadImage(ctx context.Context, endpoint, apiKey, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid image host endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := imageHostClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var hostResp imageHostResponse
	if err := json.NewDecoder(resp.Body).Decode(&hostResp); err != nil {
		return "", fmt.Errorf("failed to decode image host response: %w", err)
	}
	if !hostResp.Success {
		return "", fmt.Errorf("image host rejected the upload")
	}
	if hostResp.Data.DisplayURL != "" {
		return hostResp.Data.DisplayURL, nil
	}
	return hostResp.Data.URL, nil
}
