package handler

import (
	"time"
)

// CreateMemoRequestDTO represents HTTP request for creating a memo
type CreateMemoRequestDTO struct {
	Title    string   `json:"title" binding:"required,max=100" validate:"required,max=100,safe_text,no_sql_injection"`
	Content  string   `json:"content" binding:"required,max=10000" validate:"required,max=10000,safe_text"`
	Category string   `json:"category" validate:"omitempty,max=100,safe_text,no_sql_injection"`
	Tags     []string `json:"tags" validate:"omitempty,dive,max=100,safe_text"`
	IsPinned bool     `json:"isPinned"`
}

// UpdateMemoRequestDTO represents HTTP request for updating a memo.
// Absent fields leave the stored value unchanged.
type UpdateMemoRequestDTO struct {
	Title    *string  `json:"title,omitempty" binding:"omitempty,max=100" validate:"omitempty,max=100,safe_text,no_sql_injection"`
	Content  *string  `json:"content,omitempty" binding:"omitempty,max=10000" validate:"omitempty,max=10000,safe_text"`
	Category *string  `json:"category,omitempty" validate:"omitempty,max=100,safe_text,no_sql_injection"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,max=100,safe_text"`
	IsPinned *bool    `json:"isPinned,omitempty"`
}

// MemoFilterDTO represents HTTP query parameters for listing memos.
// limit と page は文字列で受けてハンドラー側で決定的に数値へ変換する
type MemoFilterDTO struct {
	Search   string `form:"search" validate:"omitempty,max=200,safe_text,no_sql_injection"`
	Category string `form:"category" validate:"omitempty,max=100,safe_text,no_sql_injection"`
	Limit    string `form:"limit"`
	Page     string `form:"page"`
}

// MemoResponseDTO represents HTTP response for a memo
type MemoResponseDTO struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaginationDTO represents pagination metadata for list responses
type PaginationDTO struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Count      int `json:"count"`
	TotalCount int `json:"totalCount"`
}

// SuccessResponseDTO represents the uniform success envelope
type SuccessResponseDTO struct {
	Success    bool           `json:"success"`
	Data       interface{}    `json:"data,omitempty"`
	Message    string         `json:"message,omitempty"`
	Pagination *PaginationDTO `json:"pagination,omitempty"`
}

// ErrorResponseDTO represents the uniform failure envelope
type ErrorResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
