package models

import "gorm.io/gorm"

type SitePage struct {
	gorm.Model
	Slug      string        `gorm:"unique;not null" json:"slug"`
	Title     string        `gorm:"not null" json:"title"`
	IsVisible bool          `gorm:"default:true" json:"is_visible"`
	Sections  []PageSection `json:"sections,omitempty"`
}

type PageSection struct {
	gorm.Model
	SitePageID  uint           `gorm:"index;not null" json:"site_page_id"`
	SectionType string         `gorm:"not null" json:"section_type"` // hero, text, features, cta, columns, gallery, custom
	Title       string         `json:"title"`
	SortOrder   int            `gorm:"not null" json:"sort_order"`
	IsVisible   bool           `gorm:"default:true" json:"is_visible"`
	Blocks      []SectionBlock `json:"blocks,omitempty"`
}

type SectionBlock struct {
	gorm.Model
	PageSectionID uint   `gorm:"index;not null" json:"page_section_id"`
	BlockType     string `gorm:"not null" json:"block_type"` // heading, text, image, video, button, spacer, divider, html
	Content       string `json:"content"`
	MediaURL      string `json:"media_url"`
	AltText       string `json:"alt_text"`
	LinkURL       string `json:"link_url"`
	SortOrder     int    `gorm:"not null" json:"sort_order"`
	IsVisible     bool   `gorm:"default:true" json:"is_visible"`
}

var sectionTypes = map[string]bool{
	"hero": true, "text": true, "features": true, "cta": true,
	"columns": true, "gallery": true, "custom": true,
}

var blockTypes = map[string]bool{
	"heading": true, "text": true, "image": true, "video": true,
	"button": true, "spacer": true, "divider": true, "html": true,
}

func ValidSectionType(t string) bool { return sectionTypes[t] }

func ValidBlockType(t string) bool { return blockTypes[t] }
