package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/pkg/errcode"
	"github.com/hirescope/hirescope/internal/pkg/response"
	"github.com/hirescope/hirescope/internal/service"
)

type ScreeningHandler struct {
	screening      *service.ScreeningService
	maxUploadBytes int64
}

func NewScreeningHandler(screening *service.ScreeningService, maxUploadBytes int64) *ScreeningHandler {
	return &ScreeningHandler{screening: screening, maxUploadBytes: maxUploadBytes}
}

type chatRequest struct {
	Question string              `json:"question"`
	History  []model.ChatMessage `json:"history"`
}

func (h *ScreeningHandler) UploadResume(c *gin.Context) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.screening.UploadResume(c.Request.Context(), filename, data)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ScreeningHandler) UploadJobDescription(c *gin.Context) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.screening.UploadJobDescription(c.Request.Context(), filename, data)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ScreeningHandler) Analysis(c *gin.Context) {
	analysis, err := h.screening.Analyze(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "analysis": analysis})
}

func (h *ScreeningHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.screening.Chat(c.Request.Context(), req.Question, req.History)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "answer": result.Answer, "sections": result.Sections})
}

func (h *ScreeningHandler) Ask(c *gin.Context) {
	prompt := c.Query("prompt")
	answer, err := h.screening.Ask(c.Request.Context(), prompt)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "answer": answer})
}

func (h *ScreeningHandler) readUpload(c *gin.Context) (string, []byte, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "file is required")
		return "", nil, false
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "file exceeds the "+formatUploadLimit(h.maxUploadBytes)+" upload limit")
		return "", nil, false
	}
	data, err := readAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "failed to read file")
		return "", nil, false
	}
	return file.Filename, data, true
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	opened, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer opened.Close()
	return io.ReadAll(opened)
}
