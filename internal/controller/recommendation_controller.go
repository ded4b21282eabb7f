package controller

import (
	"net/http"

	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// GetRecommendations godoc
// @Summary Weak areas, next topics and study recommendations
// @Tags recommendations
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.Recommendations
// @Failure 401 {object} util.ErrorResponse
// @Router /api/recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	recs, err := c.RecommendationService.Recommend(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, recs)
}
