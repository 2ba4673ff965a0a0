package routes

import (
	"memoflow/src/interface/handler"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all API routes
func SetupRoutes(r *gin.Engine, memoHandler *handler.MemoHandler) {
	api := r.Group("/api")

	memos := api.Group("/memos")
	{
		// メモの基本CRUD操作
		memos.GET("", memoHandler.ListMemos)         // GET /api/memos
		memos.POST("", memoHandler.CreateMemo)       // POST /api/memos
		memos.GET("/:id", memoHandler.GetMemo)       // GET /api/memos/:id
		memos.PUT("/:id", memoHandler.UpdateMemo)    // PUT /api/memos/:id
		memos.DELETE("/:id", memoHandler.DeleteMemo) // DELETE /api/memos/:id

		// ピン留めの切り替え
		memos.PATCH("/:id/pin", memoHandler.TogglePin) // PATCH /api/memos/:id/pin

		// カテゴリ一覧
		memos.GET("/categories/list", memoHandler.ListCategories) // GET /api/memos/categories/list
	}
}
