package uploads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"majlis-rsvp/internal/logger"
)

// ErrObjectNotFound marks a missing stored object; handlers translate it to
// 404.
var ErrObjectNotFound = errors.New("object not found")

const uploadURLTTL = 15 * time.Minute

// Service brokers access to the external object-storage signing sidecar. The
// core never talks to the storage medium itself, only to signed URLs.
type Service struct {
	Client     *http.Client
	Logger     *logger.Logger
	SignerURL  string
	PrivateDir string
}

func NewService(client *http.Client, log *logger.Logger, signerURL, privateDir string) *Service {
	return &Service{
		Client:     client,
		Logger:     log,
		SignerURL:  strings.TrimSuffix(signerURL, "/"),
		PrivateDir: strings.TrimSuffix(privateDir, "/"),
	}
}

// Enabled reports whether the external signing service is configured.
func (s *Service) Enabled() bool {
	return s.SignerURL != "" && s.PrivateDir != ""
}

// RequestUploadURL issues a short-lived signed PUT URL for a fresh object
// under the private uploads directory, and the stable /objects path clients
// use to reference it afterwards.
func (s *Service) RequestUploadURL() (uploadURL, objectPath string, err error) {
	objectID := uuid.New().String()
	fullPath := fmt.Sprintf("%s/uploads/%s", s.PrivateDir, objectID)

	uploadURL, err = s.signObjectURL(fullPath, http.MethodPut)
	if err != nil {
		return "", "", err
	}
	return uploadURL, "/objects/uploads/" + objectID, nil
}

// ServeObject streams a stored object to the client. objectPath is the
// /objects/... reference returned by RequestUploadURL.
func (s *Service) ServeObject(w http.ResponseWriter, objectPath string) error {
	objectName := strings.TrimPrefix(objectPath, "/objects/")
	if objectName == "" || objectName == objectPath {
		return ErrObjectNotFound
	}

	signedURL, err := s.signObjectURL(fmt.Sprintf("%s/%s", s.PrivateDir, objectName), http.MethodGet)
	if err != nil {
		return err
	}

	resp, err := s.Client.Get(signedURL)
	if err != nil {
		return fmt.Errorf("object storage error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			s.Logger.Error("UPLOADS", fmt.Sprintf("Failed to close object response body: %v", err))
		}
	}(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return ErrObjectNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("object storage returned status: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if length := resp.Header.Get("Content-Length"); length != "" {
		w.Header().Set("Content-Length", length)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, err = io.Copy(w, resp.Body)
	return err
}

// signObjectURL asks the sidecar for a signed URL covering one method on one
// object.
func (s *Service) signObjectURL(fullPath, method string) (string, error) {
	bucketName, objectName, err := parseObjectPath(fullPath)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]string{
		"bucket_name": bucketName,
		"object_name": objectName,
		"method":      method,
		"expires_at":  time.Now().Add(uploadURLTTL).UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}

	resp, err := s.Client.Post(
		s.SignerURL+"/object-storage/signed-object-url",
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("signing service error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("signing service returned status: %d", resp.StatusCode)
	}

	var body struct {
		SignedURL string `json:"signed_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode signing response: %w", err)
	}
	return body.SignedURL, nil
}

// parseObjectPath splits "/bucket/dir/object" into bucket and object name.
func parseObjectPath(path string) (bucket, object string, err error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	parts := strings.SplitN(path[1:], "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid object path: %s", path)
	}
	return parts[0], parts[1], nil
}
