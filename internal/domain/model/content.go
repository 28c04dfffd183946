package model

import (
	"strings"
	"time"

	"telegram-language-bot/internal/domain"
)

// DefaultLanguage is the language tag sections get when none is given.
const DefaultLanguage = "uzbek"

// Section is the top level of the learning content hierarchy.
type Section struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	IsPremium   bool      `json:"is_premium"`
	CreatedBy   *int64    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewSection(name, description, language string, isPremium bool, createdBy *int64) (*Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidArgument
	}
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}
	return &Section{
		Name:        name,
		Description: description,
		Language:    language,
		IsPremium:   isPremium,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}, nil
}

// SectionFilter narrows section listings. Nil/empty fields do not filter.
type SectionFilter struct {
	Language  string
	IsPremium *bool
}

// Subsection belongs to exactly one section.
type Subsection struct {
	ID          int64     `json:"id"`
	SectionID   int64     `json:"section_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPremium   bool      `json:"is_premium"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewSubsection(sectionID int64, name, description string, isPremium bool) (*Subsection, error) {
	name = strings.TrimSpace(name)
	if sectionID <= 0 || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Subsection{
		SectionID:   sectionID,
		Name:        name,
		Description: description,
		IsPremium:   isPremium,
		CreatedAt:   time.Now(),
	}, nil
}

// Content is a single learning item. SectionID and SubsectionID use 0 for "unassigned".
// FileID is an opaque platform file reference and is never inspected.
type Content struct {
	ID           int64     `json:"id"`
	SectionID    int64     `json:"section_id"`
	SubsectionID int64     `json:"subsection_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ContentType  FileType  `json:"content_type"`
	FileID       string    `json:"file_id,omitempty"`
	FilePath     string    `json:"file_path,omitempty"`
	ContentText  string    `json:"content_text,omitempty"`
	IsPremium    bool      `json:"is_premium"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewContentParams describes a content item to add.
type NewContentParams struct {
	SectionID    int64
	SubsectionID int64
	Title        string
	Description  string
	ContentType  FileType
	FileID       string
	FilePath     string
	ContentText  string
	IsPremium    bool
}

func NewContent(p NewContentParams) (*Content, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" || p.SectionID < 0 || p.SubsectionID < 0 {
		return nil, domain.ErrInvalidArgument
	}
	if !p.ContentType.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	if p.FileID == "" && p.FilePath == "" && p.ContentText == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Content{
		SectionID:    p.SectionID,
		SubsectionID: p.SubsectionID,
		Title:        title,
		Description:  p.Description,
		ContentType:  p.ContentType,
		FileID:       p.FileID,
		FilePath:     p.FilePath,
		ContentText:  p.ContentText,
		IsPremium:    p.IsPremium,
		CreatedAt:    time.Now(),
	}, nil
}

// PremiumContent belongs to the flat, track-scoped premium catalog.
type PremiumContent struct {
	ID          int64     `json:"id"`
	Track       TrackType `json:"section_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileID      string    `json:"file_id,omitempty"`
	FileType    FileType  `json:"file_type"`
	ContentText string    `json:"content_text,omitempty"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewPremiumContentParams struct {
	Track       TrackType
	Title       string
	Description string
	FileID      string
	FileType    FileType
	ContentText string
	OrderIndex  int
}

func NewPremiumContent(p NewPremiumContentParams) (*PremiumContent, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" || !p.Track.Valid() || !p.FileType.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	if p.FileID == "" && p.ContentText == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &PremiumContent{
		Track:       p.Track,
		Title:       title,
		Description: p.Description,
		FileID:      p.FileID,
		FileType:    p.FileType,
		ContentText: p.ContentText,
		OrderIndex:  p.OrderIndex,
		CreatedAt:   time.Now(),
	}, nil
}

// ContentProgress records that a user completed a content item.
type ContentProgress struct {
	ID          int64
	UserID      int64
	ContentID   int64
	Completed   bool
	CompletedAt *time.Time
}
