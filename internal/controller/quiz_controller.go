package controller

import (
	"errors"
	"net/http"
	"strconv"

	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	TopicID   uint                       `json:"topic_id" binding:"required"`
	Answers   []service.AnswerSubmission `json:"answers"`
	TimeTaken int                        `json:"time_taken"`
}

// GetQuiz godoc
// @Summary A quiz for the topic
// @Description Question count follows difficulty (10/15/20); the questions
// @Description list is always non-empty even when external generation is
// @Description unavailable.
// @Tags quiz
// @Produce json
// @Param topic_id path int true "topic id"
// @Success 200 {object} service.Quiz
// @Failure 404 {object} util.ErrorResponse
// @Router /api/quiz/{topic_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	topicID, err := strconv.ParseUint(ctx.Param("topic_id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid topic id")
		return
	}

	quiz, err := c.QuizService.BuildQuiz(ctx.Request.Context(), uint(topicID))
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx, "Topic not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit graded quiz answers
// @Description Appends an immutable result row and marks the topic
// @Description completed with the submitted score (last attempt wins).
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitQuizRequest true "graded answers"
// @Success 200 {object} service.SubmissionResult
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(claims.UserID, req.TopicID, req.Answers, req.TimeTaken)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
