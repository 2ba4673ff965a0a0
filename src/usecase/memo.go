package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"memoflow/src/domain"
)

var (
	ErrMemoNotFound   = errors.New("memo not found")
	ErrInvalidTitle   = errors.New("title is required and must be at most 100 characters")
	ErrInvalidContent = errors.New("content is required and must be at most 10000 characters")
)

// CreateMemoRequest represents input for creating a memo
type CreateMemoRequest struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	IsPinned bool
}

// UpdateMemoRequest represents input for updating a memo.
// nil のフィールドは変更しない
type UpdateMemoRequest struct {
	Title    *string
	Content  *string
	Category *string
	Tags     []string
	IsPinned *bool
}

// MemoUsecase defines the interface for memo business logic
type MemoUsecase interface {
	CreateMemo(ctx context.Context, req CreateMemoRequest) (*domain.Memo, error)
	GetMemo(ctx context.Context, id int) (*domain.Memo, error)
	ListMemos(ctx context.Context, filter domain.MemoFilter) ([]domain.Memo, int, error)
	UpdateMemo(ctx context.Context, id int, req UpdateMemoRequest) (*domain.Memo, error)
	DeleteMemo(ctx context.Context, id int) error
	TogglePin(ctx context.Context, id int) (*domain.Memo, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type memoUsecase struct {
	memoRepo domain.MemoRepository
}

// NewMemoUsecase creates a new memo usecase
func NewMemoUsecase(memoRepo domain.MemoRepository) MemoUsecase {
	return &memoUsecase{
		memoRepo: memoRepo,
	}
}

// CreateMemo creates a new memo with defaults applied
func (u *memoUsecase) CreateMemo(ctx context.Context, req CreateMemoRequest) (*domain.Memo, error) {
	now := time.Now()
	memo := &domain.Memo{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      req.Tags,
		IsPinned:  req.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	memo.Normalize()

	if err := u.validateMemo(memo); err != nil {
		return nil, err
	}

	return u.memoRepo.Create(ctx, memo)
}

// GetMemo retrieves a memo by ID
func (u *memoUsecase) GetMemo(ctx context.Context, id int) (*domain.Memo, error) {
	memo, err := u.memoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, u.mapNotFound(err)
	}
	return memo, nil
}

// ListMemos retrieves memos with filtering and the total match count
func (u *memoUsecase) ListMemos(ctx context.Context, filter domain.MemoFilter) ([]domain.Memo, int, error) {
	filter.Normalize()
	return u.memoRepo.List(ctx, filter)
}

// UpdateMemo applies a partial update and re-validates the merged record.
// 必須フィールドを空にする更新は拒否する
func (u *memoUsecase) UpdateMemo(ctx context.Context, id int, req UpdateMemoRequest) (*domain.Memo, error) {
	existing, err := u.memoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, u.mapNotFound(err)
	}

	merged := *existing
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Content != nil {
		merged.Content = *req.Content
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.Tags != nil {
		merged.Tags = req.Tags
	}
	if req.IsPinned != nil {
		merged.IsPinned = *req.IsPinned
	}
	merged.Normalize()

	if err := u.validateMemo(&merged); err != nil {
		return nil, err
	}

	merged.UpdatedAt = time.Now()

	memo, err := u.memoRepo.Update(ctx, id, &merged)
	if err != nil {
		return nil, u.mapNotFound(err)
	}
	return memo, nil
}

// DeleteMemo permanently deletes a memo
func (u *memoUsecase) DeleteMemo(ctx context.Context, id int) error {
	if err := u.memoRepo.Delete(ctx, id); err != nil {
		return u.mapNotFound(err)
	}
	return nil
}

// TogglePin flips the pin flag and refreshes updatedAt
func (u *memoUsecase) TogglePin(ctx context.Context, id int) (*domain.Memo, error) {
	existing, err := u.memoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, u.mapNotFound(err)
	}

	memo, err := u.memoRepo.SetPinned(ctx, id, !existing.IsPinned)
	if err != nil {
		return nil, u.mapNotFound(err)
	}
	return memo, nil
}

// ListCategories returns the distinct categories in use
func (u *memoUsecase) ListCategories(ctx context.Context) ([]string, error) {
	return u.memoRepo.ListCategories(ctx)
}

// validateMemo checks the normalized record against the schema constraints
func (u *memoUsecase) validateMemo(memo *domain.Memo) error {
	if !memo.HasValidTitle() {
		return ErrInvalidTitle
	}
	if !memo.HasValidContent() {
		return ErrInvalidContent
	}
	return nil
}

// mapNotFound translates repository not-found errors into the sentinel
func (u *memoUsecase) mapNotFound(err error) error {
	if strings.Contains(err.Error(), "memo not found") {
		return ErrMemoNotFound
	}
	return err
}
