package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"worktrack/internal/storage"
)

// MaxFilenameLength bounds uploaded image filenames
const MaxFilenameLength = 255

// Profile images only; anything else is rejected before presigning
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadURLRequest is the request payload for a presigned upload URL
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries the presigned upload URL and the object key to
// store on the user's profile
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileKey   string `json:"file_key"`
	ExpiresAt int64  `json:"expires_at"`
}

// DownloadURLRequest is the request payload for a presigned download URL
type DownloadURLRequest struct {
	FileKey string `json:"file_key" binding:"required"`
}

// DownloadURLResponse carries the presigned download URL
type DownloadURLResponse struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   int64  `json:"expires_at"`
}

func validateFilename(filename string) error {
	if len(filename) > MaxFilenameLength {
		return fmt.Errorf("filename too long (max %d characters)", MaxFilenameLength)
	}
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return fmt.Errorf("filename contains invalid characters")
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("filename must have an extension")
	}
	return nil
}

// uploadURLHandler creates a presigned URL for a profile-image upload
func (s *Server) uploadURLHandler(c *gin.Context) {
	if s.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage service is not available"})
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename and content_type are required"})
		return
	}

	if err := validateFilename(req.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !allowedImageTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("content type %s is not allowed", req.ContentType)})
		return
	}

	fileKey := fmt.Sprintf("avatars/%s-%s", uuid.New().String(), req.Filename)

	uploadURL, err := s.storage.PresignUpload(c.Request.Context(), fileKey, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL: uploadURL,
		FileKey:   fileKey,
		ExpiresAt: time.Now().Add(storage.UploadURLTTL).Unix(),
	})
}

// downloadURLHandler creates a presigned URL for fetching a profile image
func (s *Server) downloadURLHandler(c *gin.Context) {
	if s.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage service is not available"})
		return
	}

	var req DownloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_key is required"})
		return
	}

	downloadURL, err := s.storage.PresignDownload(c.Request.Context(), req.FileKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
		return
	}

	c.JSON(http.StatusOK, DownloadURLResponse{
		DownloadURL: downloadURL,
		ExpiresAt:   time.Now().Add(storage.DownloadURLTTL).Unix(),
	})
}
