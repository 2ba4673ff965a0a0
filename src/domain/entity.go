package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// メモフィールドの制約値
const (
	MaxTitleLength   = 100
	MaxContentLength = 10000
	DefaultCategory  = "general"

	// CategoryAll はカテゴリフィルタを無効化するセンチネル値
	CategoryAll = "all"
)

// ページネーションのデフォルト値
const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Memo represents a memo domain entity
type Memo struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MemoFilter represents filter criteria for memo queries
type MemoFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// Normalize applies field defaults and trimming rules.
// content はトリムせずそのまま保存する
func (m *Memo) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Category = strings.TrimSpace(m.Category)
	if m.Category == "" {
		m.Category = DefaultCategory
	}
	m.Tags = NormalizeTags(m.Tags)
}

// HasValidTitle reports whether the title is non-empty and within bounds
func (m *Memo) HasValidTitle() bool {
	n := utf8.RuneCountInString(m.Title)
	return n > 0 && n <= MaxTitleLength
}

// HasValidContent reports whether the content is non-empty and within bounds.
// 空白のみの content も空とみなす
func (m *Memo) HasValidContent() bool {
	if strings.TrimSpace(m.Content) == "" {
		return false
	}
	return utf8.RuneCountInString(m.Content) <= MaxContentLength
}

// Normalize coerces pagination values to their defaults and resolves the
// "all" category sentinel to an unset filter.
func (f *MemoFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Category == CategoryAll {
		f.Category = ""
	}
}

// Offset returns the query offset derived from page and limit
func (f *MemoFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// NormalizeTags trims each tag and drops empty ones, preserving
// insertion order.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
