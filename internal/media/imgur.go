package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const defaultImgurAPIURL = "https://api.imgur.com/3"

// imgurResponse is the Imgur API envelope.
type imgurResponse struct {
	Data struct {
		ID         string `json:"id"`
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
		Type       string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Imgur uploads images to Imgur. The deletehash returned on upload is the
// opaque identifier later deletes are keyed by.
type Imgur struct {
	clientID string
	baseURL  string
	client   *http.Client
}

// NewImgur reads IMGUR_CLIENT_ID (required) and IMGUR_API_URL (optional,
// for tests).
func NewImgur() (*Imgur, error) {
	clientID := os.Getenv("IMGUR_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("IMGUR_CLIENT_ID is not set")
	}

	baseURL := os.Getenv("IMGUR_API_URL")
	if baseURL == "" {
		baseURL = defaultImgurAPIURL
	}

	return &Imgur{
		clientID: clientID,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (i *Imgur) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(fileBytes)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64Image); err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}
	if err := writer.WriteField("name", header.Filename); err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/image", &requestBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+i.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var imgurResp imgurResponse
	if err := json.Unmarshal(body, &imgurResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !imgurResp.Success {
		return nil, fmt.Errorf("imgur upload failed: status %d", imgurResp.Status)
	}

	return &UploadResult{
		URL:      imgurResp.Data.Link,
		PublicID: imgurResp.Data.DeleteHash,
	}, nil
}

func (i *Imgur) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, i.baseURL+"/image/"+publicID, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+i.clientID)

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// Imgur answers 404 for unknown hashes; delete-if-absent is a no-op.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("imgur delete failed: status %d", resp.StatusCode)
	}
	return nil
}
