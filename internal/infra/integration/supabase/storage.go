package supabase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Storage stores document files in one Supabase Storage bucket.
type Storage struct {
	client *Client
	bucket string
}

func NewStorage(client *Client, bucket string) *Storage {
	return &Storage{client: client, bucket: bucket}
}

func (s *Storage) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/storage/v1/object/%s/%s", s.client.baseURL, s.bucket, escapePath(path)),
		bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	s.client.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	if err := s.client.do(req, nil); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return s.PublicURL(path), nil
}

func (s *Storage) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.client.baseURL, s.bucket, escapePath(path))
}

// Delete removes every given object in one request. Missing objects are not an error.
func (s *Storage) Delete(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	req, err := s.client.newJSONRequest(ctx, http.MethodDelete,
		fmt.Sprintf("/storage/v1/object/%s", s.bucket),
		deleteObjectsRequest{Prefixes: paths})
	if err != nil {
		return err
	}

	if err := s.client.do(req, nil); err != nil {
		return fmt.Errorf("delete %d objects: %w", len(paths), err)
	}
	return nil
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
