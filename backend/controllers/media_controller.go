package controllers

import (
	"strings"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMediaController(db *gorm.DB, cfg *config.Config) *MediaController {
	return &MediaController{DB: db, Cfg: cfg}
}

func (mc *MediaController) ListAssets(c *fiber.Ctx) error {
	query := mc.DB.Model(&models.MediaAsset{}).Order("created_at desc")

	if fileType := c.Query("file_type"); fileType != "" {
		query = query.Where("file_type = ?", fileType)
	}

	var assets []models.MediaAsset
	if err := query.Find(&assets).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(assets)
}

// CreateAsset registers either uploaded file metadata or a pasted external
// URL. The file type is taken from the request when given, otherwise
// inferred from the URL.
func (mc *MediaController) CreateAsset(c *fiber.Ctx) error {
	var input struct {
		FileName     string `json:"file_name"`
		FileURL      string `json:"file_url"`
		FileType     string `json:"file_type"`
		MimeType     string `json:"mime_type"`
		FileSize     int64  `json:"file_size"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.FileURL == "" {
		return utils.BadRequest(c, "file_url is required")
	}

	fileType := input.FileType
	if fileType == "" {
		fileType = utils.InferFileType(input.FileURL)
	}

	fileName := input.FileName
	if fileName == "" {
		if i := strings.LastIndex(input.FileURL, "/"); i >= 0 && i+1 < len(input.FileURL) {
			fileName = input.FileURL[i+1:]
		} else {
			fileName = uuid.NewString()
		}
	}

	asset := models.MediaAsset{
		FileName:     fileName,
		FileURL:      input.FileURL,
		FileType:     fileType,
		MimeType:     input.MimeType,
		FileSize:     input.FileSize,
		ThumbnailURL: input.ThumbnailURL,
	}
	if err := mc.DB.Create(&asset).Error; err != nil {
		return utils.InternalServerError(c, "Could not save media asset")
	}

	return utils.Created(c, asset)
}
