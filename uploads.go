package main

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

var imageMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func uploadsDir() string {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// saveItemImage stores one multipart image on local disk under a uuid
// filename and writes a 200px-wide thumbnail next to it. Returns the
// stored filename.
func saveItemImage(file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSizeBytes {
		return "", utils.NewValidationError("File size exceeds 5MB limit")
	}
	ext, ok := imageMimeTypes[file.Header.Get("Content-Type")]
	if !ok {
		return "", utils.NewValidationError("Unsupported image type")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSizeBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxUploadSizeBytes {
		return "", utils.NewValidationError("File size exceeds 5MB limit")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", utils.NewValidationError("Invalid image file")
	}

	dir := uploadsDir()
	if err := os.MkdirAll(filepath.Join(dir, "thumbnails"), 0o755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", err
	}

	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "thumbnails", filename), buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	return filename, nil
}

// imageFromForm picks the optional image part off a multipart request and
// stores it. Second return reports whether a part was present at all.
func imageFromForm(c *gin.Context) (string, bool, error) {
	file, err := c.FormFile("imagem")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", false, nil
		}
		return "", false, err
	}
	filename, err := saveItemImage(file)
	if err != nil {
		return "", true, err
	}
	return filename, true, nil
}

func uploadImageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("imagem")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
			return
		}

		filename, err := saveItemImage(file)
		if err != nil {
			respondError(c, "uploads", "uploadImageHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"filename":     filename,
			"url":          "/uploads/" + filename,
			"thumbnailUrl": "/uploads/thumbnails/" + filename,
		})
	}
}
