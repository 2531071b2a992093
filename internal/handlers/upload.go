package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopapi/internal/models"
)

const maxImageSize = 20 << 10 // 20KB

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

/*
POST /files/uploadImage/:id
- admin only
- multipart field "image", max 20KB, jpg/jpeg/png/webp/gif
- stores the file locally and points the product's imgUrl at it
*/
func UploadImage(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /files/uploadImage/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		if err := validateImageFile(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		imgURL, diskPath, err := saveProductImage(file, uploadDir)
		if err != nil {
			log.Printf("[%s] image save failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "image save failed")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var product models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": productID},
			bson.M{"$set": bson.M{"imgUrl": imgURL}},
			opts,
		).Decode(&product)
		if err == mongo.ErrNoDocuments {
			// Nothing references the stored file when the product is gone.
			_ = os.Remove(diskPath)
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] image uploaded for product %s", route, productID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

func validateImageFile(file *multipart.FileHeader) error {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return fmt.Errorf("image file too large (max 20KB)")
	}
	return nil
}

func saveProductImage(file *multipart.FileHeader, uploadDir string) (string, string, error) {
	filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))

	dir := filepath.Join(uploadDir, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	diskPath := filepath.Join(dir, filename)
	out, err := os.Create(diskPath)
	if err != nil {
		return "", "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", "", err
	}

	// The URL path served by the /public static route in main.
	return path.Join("/public/uploads/products", filename), diskPath, nil
}
