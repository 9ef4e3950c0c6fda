package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ImageFieldName is the multipart field the upload endpoint reads
const ImageFieldName = "imagem"

// ImageUpload is a single-file multipart payload
type ImageUpload struct {
	FieldName   string
	Filename    string
	ContentType string
	Content     []byte
}

// NewImageUpload builds the payload for a picked image. source may be a
// local path or URI; only its last segment is sent as the filename.
func NewImageUpload(source string, content []byte) ImageUpload {
	filename := path.Base(strings.ReplaceAll(source, "\\", "/"))
	return ImageUpload{
		FieldName:   ImageFieldName,
		Filename:    filename,
		ContentType: InferImageMIME(filename, content),
		Content:     content,
	}
}

// fallbackMIME is used when extensionless content does not sniff as an image
const fallbackMIME = "application/octet-stream"

// InferImageMIME derives image/<ext> from the filename extension. Without an
// extension the type is sniffed from the content, and anything that is not
// an image becomes application/octet-stream.
func InferImageMIME(filename string, content []byte) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	switch ext {
	case "":
		detected := mimetype.Detect(content)
		if !strings.HasPrefix(detected.String(), "image/") {
			return fallbackMIME
		}
		return detected.String()
	case "jpg":
		return "image/jpeg"
	default:
		return "image/" + ext
	}
}

// Encode renders the payload as a multipart/form-data body
func (u ImageUpload) Encode() (io.Reader, string, error) {
	if len(u.Content) == 0 {
		return nil, "", ErrEmptyUpload
	}

	field := u.FieldName
	if field == "" {
		field = ImageFieldName
	}
	contentType := u.ContentType
	if contentType == "" {
		contentType = InferImageMIME(u.Filename, u.Content)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(u.Filename)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(u.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
