package domain_test

import (
	"strings"
	"testing"

	"memoflow/src/domain"

	"github.com/stretchr/testify/assert"
)

func TestMemoNormalize(t *testing.T) {
	tests := []struct {
		name     string
		memo     domain.Memo
		expected domain.Memo
	}{
		{
			name: "trims title and category",
			memo: domain.Memo{
				Title:    "  Shopping list  ",
				Content:  "  milk  ",
				Category: "  home  ",
			},
			expected: domain.Memo{
				Title:    "Shopping list",
				Content:  "  milk  ", // content はトリムしない
				Category: "home",
				Tags:     []string{},
			},
		},
		{
			name: "empty category falls back to general",
			memo: domain.Memo{
				Title:   "note",
				Content: "body",
			},
			expected: domain.Memo{
				Title:    "note",
				Content:  "body",
				Category: "general",
				Tags:     []string{},
			},
		},
		{
			name: "whitespace category falls back to general",
			memo: domain.Memo{
				Title:    "note",
				Content:  "body",
				Category: "   ",
			},
			expected: domain.Memo{
				Title:    "note",
				Content:  "body",
				Category: "general",
				Tags:     []string{},
			},
		},
		{
			name: "tags are trimmed and empties dropped in order",
			memo: domain.Memo{
				Title:    "note",
				Content:  "body",
				Category: "work",
				Tags:     []string{" b ", "", "a", "  ", "b"},
			},
			expected: domain.Memo{
				Title:    "note",
				Content:  "body",
				Category: "work",
				Tags:     []string{"b", "a", "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memo := tt.memo
			memo.Normalize()
			assert.Equal(t, tt.expected, memo)
		})
	}
}

func TestMemoHasValidTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		valid bool
	}{
		{"empty title", "", false},
		{"single character", "a", true},
		{"exactly 100 runes", strings.Repeat("あ", 100), true},
		{"101 runes", strings.Repeat("あ", 101), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memo := domain.Memo{Title: tt.title}
			assert.Equal(t, tt.valid, memo.HasValidTitle())
		})
	}
}

func TestMemoHasValidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"empty content", "", false},
		{"whitespace only", "   \n\t", false},
		{"single character", "x", true},
		{"exactly 10000 runes", strings.Repeat("あ", 10000), true},
		{"10001 runes", strings.Repeat("あ", 10001), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memo := domain.Memo{Content: tt.content}
			assert.Equal(t, tt.valid, memo.HasValidContent())
		})
	}
}

func TestMemoFilterNormalize(t *testing.T) {
	t.Run("defaults applied for non-positive values", func(t *testing.T) {
		filter := domain.MemoFilter{Page: 0, Limit: -3}
		filter.Normalize()

		assert.Equal(t, domain.DefaultPage, filter.Page)
		assert.Equal(t, domain.DefaultLimit, filter.Limit)
	})

	t.Run("all category sentinel clears the filter", func(t *testing.T) {
		filter := domain.MemoFilter{Category: domain.CategoryAll, Page: 2, Limit: 10}
		filter.Normalize()

		assert.Empty(t, filter.Category)
		assert.Equal(t, 2, filter.Page)
		assert.Equal(t, 10, filter.Limit)
	})

	t.Run("explicit category is preserved", func(t *testing.T) {
		filter := domain.MemoFilter{Category: "work", Page: 1, Limit: 50}
		filter.Normalize()

		assert.Equal(t, "work", filter.Category)
	})
}

func TestMemoFilterOffset(t *testing.T) {
	tests := []struct {
		page   int
		limit  int
		offset int
	}{
		{1, 50, 0},
		{2, 50, 50},
		{3, 10, 20},
	}

	for _, tt := range tests {
		filter := domain.MemoFilter{Page: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.offset, filter.Offset())
	}
}
