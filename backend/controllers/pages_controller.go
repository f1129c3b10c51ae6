package controllers

import (
	"errors"
	"strconv"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PagesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPagesController(db *gorm.DB, cfg *config.Config) *PagesController {
	return &PagesController{DB: db, Cfg: cfg}
}

func (pc *PagesController) ListPages(c *fiber.Ctx) error {
	var pages []models.SitePage
	if err := pc.DB.Order("id").Find(&pages).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(pages)
}

func (pc *PagesController) GetPage(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var page models.SitePage
	err = pc.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Sections.Blocks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&page, pageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Page not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(page)
}

func (pc *PagesController) CreatePage(c *fiber.Ctx) error {
	var input struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Slug == "" || input.Title == "" {
		return utils.BadRequest(c, "Slug and title are required")
	}

	page := models.SitePage{Slug: input.Slug, Title: input.Title, IsVisible: true}
	if err := pc.DB.Create(&page).Error; err != nil {
		return utils.InternalServerError(c, "Could not create page")
	}

	return utils.Created(c, page)
}

func (pc *PagesController) UpdatePage(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var input struct {
		Slug      string `json:"slug"`
		Title     string `json:"title"`
		IsVisible *bool  `json:"is_visible"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var page models.SitePage
	if err := pc.DB.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Page not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Slug != "" {
		page.Slug = input.Slug
	}
	if input.Title != "" {
		page.Title = input.Title
	}
	if input.IsVisible != nil {
		page.IsVisible = *input.IsVisible
	}

	if err := pc.DB.Save(&page).Error; err != nil {
		return utils.InternalServerError(c, "Could not update page")
	}

	return c.JSON(page)
}

func (pc *PagesController) DeletePage(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var page models.SitePage
	if err := pc.DB.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Page not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&models.PageSection{}).Where("site_page_id = ?", pageID).Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("page_section_id IN ?", sectionIDs).Delete(&models.SectionBlock{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("site_page_id = ?", pageID).Delete(&models.PageSection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete page")
	}

	return c.JSON(fiber.Map{"message": "Page deleted"})
}

func (pc *PagesController) ListSections(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var sections []models.PageSection
	if err := pc.DB.Where("site_page_id = ?", pageID).Order("sort_order").Find(&sections).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(sections)
}

func (pc *PagesController) CreateSection(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var input struct {
		SectionType string `json:"section_type"`
		Title       string `json:"title"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !models.ValidSectionType(input.SectionType) {
		return utils.BadRequest(c, "Unknown section type")
	}

	var page models.SitePage
	if err := pc.DB.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Page not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var maxOrder int
	pc.DB.Model(&models.PageSection{}).Where("site_page_id = ?", pageID).
		Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder)

	section := models.PageSection{
		SitePageID:  uint(pageID),
		SectionType: input.SectionType,
		Title:       input.Title,
		SortOrder:   maxOrder + 1,
		IsVisible:   true,
	}
	if err := pc.DB.Create(&section).Error; err != nil {
		return utils.InternalServerError(c, "Could not create section")
	}

	return utils.Created(c, section)
}

func (pc *PagesController) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}

	var input struct {
		SectionType string `json:"section_type"`
		Title       string `json:"title"`
		IsVisible   *bool  `json:"is_visible"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var section models.PageSection
	if err := pc.DB.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.SectionType != "" {
		if !models.ValidSectionType(input.SectionType) {
			return utils.BadRequest(c, "Unknown section type")
		}
		section.SectionType = input.SectionType
	}
	if input.Title != "" {
		section.Title = input.Title
	}
	if input.IsVisible != nil {
		section.IsVisible = *input.IsVisible
	}

	if err := pc.DB.Save(&section).Error; err != nil {
		return utils.InternalServerError(c, "Could not update section")
	}

	return c.JSON(section)
}

func (pc *PagesController) DeleteSection(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}

	var section models.PageSection
	if err := pc.DB.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_section_id = ?", sectionID).Delete(&models.SectionBlock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete section")
	}

	return c.JSON(fiber.Map{"message": "Section deleted"})
}

// ReorderSections persists a full ordered id list for a page. Every id
// must belong to the page; sort orders are rewritten 1..n.
func (pc *PagesController) ReorderSections(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var input struct {
		SectionIDs []uint `json:"sectionIds"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var sections []models.PageSection
	if err := pc.DB.Where("site_page_id = ?", pageID).Find(&sections).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	owned := make(map[uint]bool, len(sections))
	for _, s := range sections {
		owned[s.ID] = true
	}
	for _, id := range input.SectionIDs {
		if !owned[id] {
			return utils.BadRequest(c, "Section does not belong to this page")
		}
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range input.SectionIDs {
			if err := tx.Model(&models.PageSection{}).Where("id = ?", id).Update("sort_order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not reorder sections")
	}

	return c.JSON(fiber.Map{"message": "Sections reordered"})
}

func (pc *PagesController) ListBlocks(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}

	var blocks []models.SectionBlock
	if err := pc.DB.Where("page_section_id = ?", sectionID).Order("sort_order").Find(&blocks).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(blocks)
}

func (pc *PagesController) CreateBlock(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}

	var input struct {
		BlockType string `json:"block_type"`
		Content   string `json:"content"`
		MediaURL  string `json:"media_url"`
		AltText   string `json:"alt_text"`
		LinkURL   string `json:"link_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !models.ValidBlockType(input.BlockType) {
		return utils.BadRequest(c, "Unknown block type")
	}

	var section models.PageSection
	if err := pc.DB.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var maxOrder int
	pc.DB.Model(&models.SectionBlock{}).Where("page_section_id = ?", sectionID).
		Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder)

	block := models.SectionBlock{
		PageSectionID: uint(sectionID),
		BlockType:     input.BlockType,
		Content:       input.Content,
		MediaURL:      input.MediaURL,
		AltText:       input.AltText,
		LinkURL:       input.LinkURL,
		SortOrder:     maxOrder + 1,
		IsVisible:     true,
	}
	if err := pc.DB.Create(&block).Error; err != nil {
		return utils.InternalServerError(c, "Could not create block")
	}

	return utils.Created(c, block)
}

func (pc *PagesController) UpdateBlock(c *fiber.Ctx) error {
	blockID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid block ID")
	}

	var input struct {
		BlockType string `json:"block_type"`
		Content   string `json:"content"`
		MediaURL  string `json:"media_url"`
		AltText   string `json:"alt_text"`
		LinkURL   string `json:"link_url"`
		IsVisible *bool  `json:"is_visible"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var block models.SectionBlock
	if err := pc.DB.First(&block, blockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Block not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.BlockType != "" {
		if !models.ValidBlockType(input.BlockType) {
			return utils.BadRequest(c, "Unknown block type")
		}
		block.BlockType = input.BlockType
	}
	if input.Content != "" {
		block.Content = input.Content
	}
	if input.MediaURL != "" {
		block.MediaURL = input.MediaURL
	}
	if input.AltText != "" {
		block.AltText = input.AltText
	}
	if input.LinkURL != "" {
		block.LinkURL = input.LinkURL
	}
	if input.IsVisible != nil {
		block.IsVisible = *input.IsVisible
	}

	if err := pc.DB.Save(&block).Error; err != nil {
		return utils.InternalServerError(c, "Could not update block")
	}

	return c.JSON(block)
}

func (pc *PagesController) DeleteBlock(c *fiber.Ctx) error {
	blockID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid block ID")
	}

	var block models.SectionBlock
	if err := pc.DB.First(&block, blockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Block not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := pc.DB.Delete(&block).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete block")
	}

	return c.JSON(fiber.Map{"message": "Block deleted"})
}

// ReorderBlocks mirrors ReorderSections for the blocks of one section.
func (pc *PagesController) ReorderBlocks(c *fiber.Ctx) error {
	sectionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}

	var input struct {
		BlockIDs []uint `json:"blockIds"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var blocks []models.SectionBlock
	if err := pc.DB.Where("page_section_id = ?", sectionID).Find(&blocks).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	owned := make(map[uint]bool, len(blocks))
	for _, b := range blocks {
		owned[b.ID] = true
	}
	for _, id := range input.BlockIDs {
		if !owned[id] {
			return utils.BadRequest(c, "Block does not belong to this section")
		}
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range input.BlockIDs {
			if err := tx.Model(&models.SectionBlock{}).Where("id = ?", id).Update("sort_order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not reorder blocks")
	}

	return c.JSON(fiber.Map{"message": "Blocks reordered"})
}
