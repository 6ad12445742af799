package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/store"
	"github.com/princinho/tradecatalog/utils"
)

// UploadImage accepts one product image in multipart field "image" and returns its URL.
func UploadImage(v *utils.FileValidator, uploader store.ImageUploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uploader == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image upload is not configured"})
			return
		}

		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
			return
		}
		contentType, err := v.ValidateFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "image"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
			return
		}
		defer f.Close()

		url, err := uploader.UploadImage(c.Request.Context(), fh.Filename, contentType, f)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
