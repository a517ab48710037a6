package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"achievement-board-api/internal/dto"
	"achievement-board-api/internal/response"
	"achievement-board-api/internal/service"
)

type BoardHandler struct {
	boardService service.BoardService
	logger       *zap.Logger
}

func NewBoardHandler(boardService service.BoardService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// ListBoards godoc
// @Summary      List boards
// @Description  Returns summaries of every board, most recently updated first
// @Tags         boards
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardSummaryResponse} "Board list"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards [get]
func (h *BoardHandler) ListBoards(c *gin.Context) {
	boards, err := h.boardService.ListBoards(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, boards)
}

// CreateBoard godoc
// @Summary      Create a board
// @Description  Creates a new achievement board; name is required
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveBoardRequest true "Board payload"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse} "Created board"
// @Failure      400 {object} response.ErrorResponse "Invalid request body or missing name"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req dto.SaveBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, board)
}

// GetBoard godoc
// @Summary      Get a board
// @Description  Returns one board with its normalized graph, stats and progression
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "Board"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// ReplaceBoard godoc
// @Summary      Replace a board
// @Description  Replaces the board document under the given id, creating it when absent
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.SaveBoardRequest true "Board payload"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "Replaced board"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID or request body"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [put]
func (h *BoardHandler) ReplaceBoard(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	var req dto.SaveBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.ReplaceBoard(c.Request.Context(), boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary      Delete a board
// @Description  Deletes a board; deleting an absent board still succeeds
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.DeleteBoardResponse} "Deletion result"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), boardID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, &dto.DeleteBoardResponse{Message: "deleted"})
}

// ExportBoard godoc
// @Summary      Export a board snapshot
// @Description  Uploads a JSON snapshot of the board to the archive bucket
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ExportBoardResponse} "Export result"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID or archive storage not configured"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /boards/{boardId}/export [post]
func (h *BoardHandler) ExportBoard(c *gin.Context) {
	boardID, ok := parseBoardID(c)
	if !ok {
		return
	}

	result, err := h.boardService.ExportBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// Debug godoc
// @Summary      Store debug info
// @Description  Returns store-level counters for troubleshooting
// @Tags         debug
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.DebugResponse} "Debug info"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /_debug [get]
func (h *BoardHandler) Debug(c *gin.Context) {
	count, err := h.boardService.CountBoards(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, &dto.DebugResponse{Boards: count})
}

// parseBoardID parses the boardId path parameter, writing a 400 response
// on failure.
func parseBoardID(c *gin.Context) (uuid.UUID, bool) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return uuid.Nil, false
	}
	return boardID, true
}
