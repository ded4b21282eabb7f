package controller

import (
	"errors"
	"net/http"
	"strconv"

	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct {
	BookmarkService *service.BookmarkService
}

func NewBookmarkController(bookmarkService *service.BookmarkService) *BookmarkController {
	return &BookmarkController{BookmarkService: bookmarkService}
}

// swagger:model AddBookmarkRequest
type AddBookmarkRequest struct {
	ResourceID uint `json:"resource_id" binding:"required"`
}

// GetBookmarks godoc
// @Summary The caller's bookmarked resources, newest first
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} repository.BookmarkedResource
// @Router /api/bookmarks [get]
func (c *BookmarkController) GetBookmarks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	bookmarks, err := c.BookmarkService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookmarks)
}

// AddBookmark godoc
// @Summary Bookmark a resource
// @Description Adding the same resource twice is a soft success, not an
// @Description error.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AddBookmarkRequest true "resource to bookmark"
// @Success 201 {object} map[string]string
// @Success 200 {object} map[string]string "already bookmarked"
// @Failure 404 {object} util.ErrorResponse
// @Router /api/bookmarks/add [post]
func (c *BookmarkController) AddBookmark(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req AddBookmarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.BookmarkService.Add(claims.UserID, req.ResourceID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyBookmarked):
			ctx.JSON(http.StatusOK, gin.H{"message": "Already bookmarked"})
		case errors.Is(err, util.ErrResourceNotFound):
			util.NotFound(ctx, "Resource not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Bookmark added"})
}

// RemoveBookmark godoc
// @Summary Remove a bookmark
// @Tags bookmarks
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "bookmark id"
// @Success 200 {object} map[string]string
// @Router /api/bookmarks/remove/{id} [delete]
func (c *BookmarkController) RemoveBookmark(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	bookmarkID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid bookmark id")
		return
	}

	if err := c.BookmarkService.Remove(claims.UserID, uint(bookmarkID)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Removed"})
}
