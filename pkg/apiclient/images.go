package apiclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/internal/model"
)

const imagesPath = "/api/images/"

// DataURIPrefix starts every string returned by FetchImage. The server does
// not declare a content type; images are assumed to be JPEG.
const DataURIPrefix = "data:image/jpeg;base64,"

// ImageClient fetches and uploads product images
type ImageClient struct {
	t *transport
}

func NewImageClient(opts Options) *ImageClient {
	return &ImageClient{t: newTransport(opts)}
}

// FetchImage downloads the named image and returns it as a data URI ready
// for display. Nothing is cached: each call issues a fresh request.
func (c *ImageClient) FetchImage(ctx context.Context, name string) (string, error) {
	if name == "" {
		c.t.log(ctx).Error("Image name is empty")
		return "", fmt.Errorf("fetchImage: %w", ErrEmptyImageName)
	}

	resp, err := c.t.send(ctx, request{
		op:            "fetchImage",
		method:        http.MethodGet,
		path:          imagesPath + escapeImagePath(name),
		authenticated: true,
	})
	if err != nil {
		return "", err
	}

	return EncodeDataURI(resp.body), nil
}

// escapeImagePath escapes each segment of a server-relative image path and
// keeps the separators, so nested paths reach the server as nested paths.
func escapeImagePath(name string) string {
	segments := strings.Split(strings.TrimPrefix(name, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// EncodeDataURI wraps raw JPEG bytes as a base64 data URI
func EncodeDataURI(raw []byte) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(raw)
}

// UploadImage sends a multipart image upload and returns the storage path
// assigned by the server, unchanged.
func (c *ImageClient) UploadImage(ctx context.Context, upload ImageUpload) (string, error) {
	body, contentType, err := upload.Encode()
	if err != nil {
		c.t.log(ctx).Error("Failed to assemble upload", zap.String("filename", upload.Filename), zap.Error(err))
		return "", fmt.Errorf("uploadImage: %w", err)
	}

	resp, err := c.t.send(ctx, request{
		op:            "uploadImage",
		method:        http.MethodPost,
		path:          uploadImagePath,
		body:          body,
		contentType:   contentType,
		authenticated: true,
	})
	if err != nil {
		return "", err
	}

	var uploaded model.ImageUploadResponse
	if err := c.t.decode(resp, &uploaded); err != nil {
		return "", err
	}

	c.t.log(ctx).Info("Image uploaded",
		zap.String("filename", upload.Filename),
		zap.String("path", uploaded.CaminhoImagem))
	return uploaded.CaminhoImagem, nil
}
