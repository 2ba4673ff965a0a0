package handler

import (
	"net/http"
	"strconv"

	"memoflow/src/domain"
	"memoflow/src/usecase"
	"memoflow/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MemoHandler handles HTTP requests for memo operations
type MemoHandler struct {
	memoUsecase  usecase.MemoUsecase
	validator    *validator.CustomValidator
	logger       *logrus.Logger
	exposeErrors bool
}

// NewMemoHandler creates a new memo handler. exposeErrors controls
// whether internal error detail is included in failure envelopes.
func NewMemoHandler(memoUsecase usecase.MemoUsecase, logger *logrus.Logger, exposeErrors bool) *MemoHandler {
	return &MemoHandler{
		memoUsecase:  memoUsecase,
		validator:    validator.NewCustomValidator(),
		logger:       logger,
		exposeErrors: exposeErrors,
	}
}

// ListMemos retrieves a page of memos with filtering
func (h *MemoHandler) ListMemos(c *gin.Context) {
	var filterDTO MemoFilterDTO
	if err := c.ShouldBindQuery(&filterDTO); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	filter := domain.MemoFilter{
		Search:   filterDTO.Search,
		Category: filterDTO.Category,
		Page:     parsePositiveInt(filterDTO.Page, domain.DefaultPage),
		Limit:    parsePositiveInt(filterDTO.Limit, domain.DefaultLimit),
	}

	memos, total, err := h.memoUsecase.ListMemos(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("メモリストの取得に失敗")
		h.respondError(c, http.StatusInternalServerError, "failed to retrieve memos", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponseDTO{
		Success: true,
		Data:    toMemoResponseDTOs(memos),
		Pagination: &PaginationDTO{
			Current:    filter.Page,
			Total:      (total + filter.Limit - 1) / filter.Limit,
			Count:      len(memos),
			TotalCount: total,
		},
	})
}

// GetMemo retrieves a memo by ID
func (h *MemoHandler) GetMemo(c *gin.Context) {
	id, ok := h.memoID(c)
	if !ok {
		return
	}

	memo, err := h.memoUsecase.GetMemo(c.Request.Context(), id)
	if err != nil {
		if err == usecase.ErrMemoNotFound {
			h.respondError(c, http.StatusNotFound, "memo not found", nil)
			return
		}
		h.logger.WithError(err).WithField("memo_id", id).Error("メモの取得に失敗")
		h.respondError(c, http.StatusInternalServerError, "failed to retrieve memo", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponseDTO{
		Success: true,
		Data:    toMemoResponseDTO(memo),
	})
}

// CreateMemo creates a new memo
func (h *MemoHandler) CreateMemo(c *gin.Context) {
	var req CreateMemoRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "title and content are required", err)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "validation failed", err)
		return
	}

	memo, err := h.memoUsecase.CreateMemo(c.Request.Context(), usecase.CreateMemoRequest{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		if err == usecase.ErrInvalidTitle || err == usecase.ErrInvalidContent {
			h.respondError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.logger.WithError(err).Error("メモの作成に失敗")
		h.respondError(c, http.StatusInternalServerError, "failed to create memo", err)
		return
	}

	h.logger.WithField("memo_id", memo.ID).Info("メモを作成しました")
	c.JSON(http.StatusCreated, SuccessResponseDTO{
		Success: true,
		Data:    toMemoResponseDTO(memo),
		Message: "memo created successfully",
	})
}

// UpdateMemo applies a partial update to an existing memo
func (h *MemoHandler) UpdateMemo(c *gin.Context) {
	id, ok := h.memoID(c)
	if !ok {
		return
	}

	var req UpdateMemoRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "validation failed", err)
		return
	}

	memo, err := h.memoUsecase.UpdateMemo(c.Request.Context(), id, usecase.UpdateMemoRequest{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		switch err {
		case usecase.ErrMemoNotFound:
			h.respondError(c, http.StatusNotFound, "memo not found", nil)
		case usecase.ErrInvalidTitle, usecase.ErrInvalidContent:
			h.respondError(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.logger.WithError(err).WithField("memo_id", id).Error("メモの更新に失敗")
			h.respondError(c, http.StatusInternalServerError, "failed to update memo", err)
		}
		return
	}

	h.logger.WithField("memo_id", id).Info("メモを更新しました")
	c.JSON(http.StatusOK, SuccessResponseDTO{
		Success: true,
		Data:    toMemoResponseDTO(memo),
		Message: "memo updated successfully",
	})
}

// DeleteMemo deletes a memo permanently
func (h *MemoHandler) DeleteMemo(c *gin.Context) {
	id, ok := h.memoID(c)
	if !ok {
		return
	}

	if err := h.memoUsecase.DeleteMemo(c.Request.Context(), id); err != nil {
		if err == usecase.ErrMemoNotFound {
			h.respondError(c, http.StatusNotFound, "memo not found", nil)
			return
		}
		h.logger.WithError(err).WithField("memo_id", id).Error("メモの削除に失敗")
		h.respondError(c, http.StatusInternalServerError, "failed to delete memo", err)
		return
	}

	h.logger.WithField("memo_id", id).Info("メモを削除しました")
	c.JSON(http.StatusOK, SuccessResponseDTO{
		Success: true,
		Message: "memo deleted successfully",
	})
}

// TogglePin flips the pin flag of a memo
func (h *MemoHandler) TogglePin(c *gin.Context) {
	id, ok := h.memoID(c)
	if !ok {
		return
	}

	memo, err := h.memoUsecase.TogglePin(c.Request.Context(), id)
	if err != nil {
		if err == usecase.ErrMemoNotFound {
			h.respondError(c, http.StatusNotFound, "memo not found", nil)
			return
		}
		h.logger.WithError(err).WithField("memo_id", id).Error("ピン留めの切り替えに失敗")
		h.respondError(c, http.StatusInternalServerError, "failed to toggle pin", err)
		return
	}

	message := "memo unpinned"
	if memo.IsPinned {
		message = "memo pinned"
	}

	c.JSON(http.StatusOK, SuccessResponseDTO{
		Success: true,
		Data:    toMemoResponseDTO(memo),
		Message: message,
	})
}

// ListCategories returns the distinct categories in use
func (h *MemoHandler) ListCategories(c *gin.Context) {
	categories, err := h.memoUsecase.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("カテゴリ一覧の取得に失敗")
		h.respondError(c, http.StatusInternalServerError, "failed to retrieve categories", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponseDTO{
		Success: true,
		Data:    categories,
	})
}

// memoID parses the id path parameter, responding 400 on non-numeric ids
func (h *MemoHandler) memoID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.respondError(c, http.StatusBadRequest, "memo id must be a positive number", nil)
		return 0, false
	}
	return id, true
}

// respondError writes a failure envelope. 内部エラーの詳細は本番では伏せる
func (h *MemoHandler) respondError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponseDTO{
		Success: false,
		Message: message,
	}
	if err != nil && h.exposeErrors {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}

func toMemoResponseDTO(memo *domain.Memo) MemoResponseDTO {
	tags := memo.Tags
	if tags == nil {
		tags = []string{}
	}
	return MemoResponseDTO{
		ID:        memo.ID,
		Title:     memo.Title,
		Content:   memo.Content,
		Category:  memo.Category,
		Tags:      tags,
		IsPinned:  memo.IsPinned,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}
}

func toMemoResponseDTOs(memos []domain.Memo) []MemoResponseDTO {
	result := make([]MemoResponseDTO, len(memos))
	for i := range memos {
		result[i] = toMemoResponseDTO(&memos[i])
	}
	return result
}

// parsePositiveInt coerces a query parameter to a positive integer,
// falling back to the default on anything non-parseable or non-positive.
func parsePositiveInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
