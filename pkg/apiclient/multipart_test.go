package apiclient

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferImageMIME(t *testing.T) {
	cases := map[string]string{
		"photo.png":  "image/png",
		"PHOTO.PNG":  "image/png",
		"shot.jpg":   "image/jpeg",
		"shot.jpeg":  "image/jpeg",
		"anim.gif":   "image/gif",
		"scan.webp":  "image/webp",
		"dir.v2/pic": "image/png",
	}
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	for name, want := range cases {
		assert.Equal(t, want, InferImageMIME(name, png), name)
	}
}

func TestInferImageMIMEFallsBackForNonImageContent(t *testing.T) {
	assert.Equal(t, "application/octet-stream", InferImageMIME("notes", []byte("just some text")))
	assert.Equal(t, "application/octet-stream", InferImageMIME("blob", []byte{0x00, 0x01, 0x02}))
	assert.Equal(t, "image/png", InferImageMIME("blob", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))

	u := NewImageUpload("content://media/42", []byte("just some text"))
	assert.Equal(t, "application/octet-stream", u.ContentType)
}

func TestNewImageUploadUsesLastPathSegment(t *testing.T) {
	u := NewImageUpload(`C:\Users\ana\Pictures\photo.png`, []byte{1})
	assert.Equal(t, "photo.png", u.Filename)
	assert.Equal(t, ImageFieldName, u.FieldName)
	assert.Equal(t, "image/png", u.ContentType)

	u = NewImageUpload("content://media/external/images/42.jpg", []byte{1})
	assert.Equal(t, "42.jpg", u.Filename)
	assert.Equal(t, "image/jpeg", u.ContentType)
}

func TestEncodeProducesSingleFilePart(t *testing.T) {
	body, contentType, err := NewImageUpload("photo.png", []byte("pixels")).Encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(body, params["boundary"])
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "imagem", part.FormName())
	assert.Equal(t, "photo.png", part.FileName())
	assert.Equal(t, "image/png", part.Header.Get("Content-Type"))

	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))

	_, err = reader.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestEncodeRejectsEmptyContent(t *testing.T) {
	_, _, err := NewImageUpload("photo.png", nil).Encode()
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

func TestTransportErrorMessages(t *testing.T) {
	withStatus := &TransportError{Op: "listProducts", Method: "GET", URL: "http://x/produtos/listAll", StatusCode: 500, Body: []byte("boom")}
	assert.Equal(t, "listProducts: GET http://x/produtos/listAll: status 500: boom", withStatus.Error())

	noResponse := &TransportError{Op: "listProducts", Method: "GET", URL: "http://x", Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "listProducts: GET http://x: unexpected EOF", noResponse.Error())
	assert.ErrorIs(t, noResponse, io.ErrUnexpectedEOF)
}
