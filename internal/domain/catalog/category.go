package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

var (
	imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|webp|gif)$`)
	slugStripRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// Category represents a product category. Categories form a tree through
// the optional ParentID reference.
type Category struct {
	shared.BaseEntity
	Name        string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
	Slug        string     `gorm:"type:varchar(60);not null;uniqueIndex" json:"slug"`
	Description string     `gorm:"type:varchar(200)" json:"description"`
	Image       string     `gorm:"type:text" json:"image"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent"`
	IsActive    bool       `gorm:"not null;default:true" json:"isActive"`
	SortOrder   int        `gorm:"not null;default:0" json:"sortOrder"`
	MetaTitle   string     `gorm:"type:varchar(60)" json:"-"`
	MetaDesc    string     `gorm:"type:varchar(160)" json:"-"`
	Keywords    []string   `gorm:"serializer:json" json:"-"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category. The slug is derived from the name.
func NewCategory(name, description, image string, parentID *uuid.UUID) (*Category, error) {
	c := &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Image:       image,
		ParentID:    parentID,
		IsActive:    true,
		Keywords:    []string{},
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.Slug = Slugify(c.Name)
	return c, nil
}

// Update replaces the category's editable fields. A name change regenerates
// the slug so it always tracks the current name.
func (c *Category) Update(name, description, image string, parentID *uuid.UUID, isActive bool, sortOrder int) error {
	name = strings.TrimSpace(name)
	renamed := name != c.Name
	c.Name = name
	c.Description = description
	c.Image = image
	c.ParentID = parentID
	c.IsActive = isActive
	c.SortOrder = sortOrder
	if err := c.validate(); err != nil {
		return err
	}
	if renamed || c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	c.Touch()
	return nil
}

// SetSEO sets the search metadata fields
func (c *Category) SetSEO(metaTitle, metaDesc string, keywords []string) error {
	if len(metaTitle) > 60 {
		return shared.NewDomainError("INVALID_SEO", "Meta title cannot exceed 60 characters")
	}
	if len(metaDesc) > 160 {
		return shared.NewDomainError("INVALID_SEO", "Meta description cannot exceed 160 characters")
	}
	if keywords == nil {
		keywords = []string{}
	}
	c.MetaTitle = metaTitle
	c.MetaDesc = metaDesc
	c.Keywords = keywords
	c.Touch()
	return nil
}

func (c *Category) validate() error {
	if c.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name is required")
	}
	if len(c.Name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 50 characters")
	}
	if len(c.Description) > 200 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 200 characters")
	}
	if c.Image != "" && !imageURLPattern.MatchString(c.Image) {
		return shared.NewDomainError("INVALID_IMAGE", "Please provide a valid image URL")
	}
	if c.ParentID != nil && *c.ParentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	return nil
}

// Slugify lowercases the name, collapses runs of non-alphanumeric characters
// into single hyphens and trims leading and trailing hyphens.
func Slugify(name string) string {
	s := slugStripRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
