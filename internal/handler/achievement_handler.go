package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"achievement-board-api/internal/dto"
	"achievement-board-api/internal/response"
	"achievement-board-api/internal/service"
)

type AchievementHandler struct {
	achievementService service.AchievementService
	logger             *zap.Logger
}

func NewAchievementHandler(achievementService service.AchievementService, logger *zap.Logger) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		logger:             logger,
	}
}

// CreateAchievement godoc
// @Summary      Add an achievement
// @Description  Adds a node to the board graph; with parentId an edge from the parent is created in the same mutation
// @Tags         achievements
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.CreateAchievementRequest true "Achievement payload (flat or nested under data)"
// @Success      201 {object} response.SuccessResponse{data=dto.CreateAchievementResponse} "Created node, optional edge and updated board"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID or request body"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      409 {object} response.ErrorResponse "Achievement id already exists"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/achievements [post]
func (h *AchievementHandler) CreateAchievement(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	var req dto.CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.achievementService.CreateAchievement(c.Request.Context(), boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// UpdateAchievement godoc
// @Summary      Update an achievement
// @Description  Applies a partial update to one node; only the fields present in the request change
// @Tags         achievements
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        achievementId path string true "Achievement ID"
// @Param        request body dto.UpdateAchievementRequest true "Patch payload (flat or nested under data)"
// @Success      200 {object} response.SuccessResponse{data=dto.AchievementResponse} "Updated node and board"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID or request body"
// @Failure      404 {object} response.ErrorResponse "Board or achievement not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/achievements/{achievementId} [patch]
func (h *AchievementHandler) UpdateAchievement(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	var req dto.UpdateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.achievementService.UpdateAchievement(c.Request.Context(), boardID, c.Param("achievementId"), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// RecordProgress godoc
// @Summary      Record achievement progress
// @Description  Moves the progress counter by delta (default 1) or sets it directly with mode=set, deriving status and timeline changes
// @Tags         achievements
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        achievementId path string true "Achievement ID"
// @Param        request body dto.RecordProgressRequest true "Progress mutation"
// @Success      200 {object} response.SuccessResponse{data=dto.AchievementResponse} "Updated node and board"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID or request body"
// @Failure      404 {object} response.ErrorResponse "Board or achievement not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/achievements/{achievementId}/progress [post]
func (h *AchievementHandler) RecordProgress(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	var req dto.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.achievementService.RecordProgress(c.Request.Context(), boardID, c.Param("achievementId"), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteAchievement godoc
// @Summary      Delete an achievement
// @Description  Removes a node and every edge touching it
// @Tags         achievements
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        achievementId path string true "Achievement ID"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardOnlyResponse} "Updated board"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      404 {object} response.ErrorResponse "Board or achievement not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/achievements/{achievementId} [delete]
func (h *AchievementHandler) DeleteAchievement(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	result, err := h.achievementService.DeleteAchievement(c.Request.Context(), boardID, c.Param("achievementId"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
