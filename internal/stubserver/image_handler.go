package stubserver

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/pkg/logger"
)

const (
	imageField   = "imagem"
	maxImageSize = 10 << 20
)

func (s *Server) uploadImage(c echo.Context) error {
	log := logger.FromEcho(c)

	file, err := c.FormFile(imageField)
	if err != nil {
		log.Warn("Upload without image field", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "imagem field is required"})
	}
	if file.Size > maxImageSize {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "image too large"})
	}

	src, err := file.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error("Failed to read uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	name := uuid.New().String() + strings.ToLower(path.Ext(file.Filename))
	s.store.PutImage(name, file.Header.Get("Content-Type"), data)

	log.Info("Image stored",
		zap.String("filename", file.Filename),
		zap.String("content_type", file.Header.Get("Content-Type")),
		zap.String("path", name),
		zap.Int("size", len(data)))
	return c.JSON(http.StatusOK, echo.Map{"caminhoImagem": name})
}

func (s *Server) getImage(c echo.Context) error {
	name := c.Param("name")

	_, data, err := s.store.GetImage(name)
	if err != nil {
		logger.FromEcho(c).Warn("Image not found", zap.String("name", name))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Image not found"})
	}

	// served as raw bytes, the client assumes JPEG
	return c.Blob(http.StatusOK, "application/octet-stream", data)
}
