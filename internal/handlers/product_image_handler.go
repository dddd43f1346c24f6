package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/models"
	"github.com/salonops/salon-manager/internal/storage"
)

const maxImageUploadBytes = 8 << 20

type ProductImageHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewProductImageHandler(db *gorm.DB, images *storage.ImageStore) *ProductImageHandler {
	return &ProductImageHandler{db: db, images: images}
}

// Upload accepts a multipart "image" file, stores it as webp and
// appends the resulting URL to the product's image list.
func (h *ProductImageHandler) Upload(c *gin.Context) {
	if !h.images.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image_storage_not_configured"})
		return
	}

	id := c.Param("id")

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_product"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_image_file"})
		return
	}
	if file.Size > maxImageUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_too_large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_read_image"})
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_read_image"})
		return
	}

	url, err := h.images.UploadProductImage(c.Request.Context(), product.ID, raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upload_image"})
		return
	}

	images := append(product.ImageList(), url)
	product.SetImageList(images)

	if err := h.db.Model(&product).Update("images", product.Images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    url,
		"images": images,
	})
}
