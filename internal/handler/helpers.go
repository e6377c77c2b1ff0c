package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirescope/hirescope/internal/pkg/errcode"
	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
	"github.com/hirescope/hirescope/internal/pkg/response"
)

// handleError maps service errors onto the wire. Upstream provider failures
// become 502 with the cause logged, not leaked. A missing precondition
// (nothing indexed yet, JD not uploaded) is an expected state, so it goes
// out as 200 with success=false the way the frontend polls for it.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	switch {
	case errors.Is(err, appErr.ErrUnsupportedFormat):
		response.Error(c, http.StatusBadRequest, errcode.ErrUnsupportedFormat, "unsupported file format")
	case errors.Is(err, appErr.ErrEmptyDocument):
		response.Error(c, http.StatusBadRequest, errcode.ErrEmptyDocument, "document contains no extractable text")
	case errors.Is(err, appErr.ErrInvalidQuery), errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrNoDocumentIndexed):
		response.Fail(c, errcode.ErrNoDocumentIndexed, "no resume uploaded yet")
	case errors.Is(err, appErr.ErrMissingDocument):
		response.Fail(c, errcode.ErrMissingDocument, "both a resume and a job description are required")
	case errors.Is(err, appErr.ErrEmbeddingUnavailable):
		response.Error(c, http.StatusBadGateway, errcode.ErrEmbeddingUnavailable, "embedding service unavailable")
	case errors.Is(err, appErr.ErrGenerationFailed):
		response.Error(c, http.StatusBadGateway, errcode.ErrGenerationFailed, "answer generation failed")
	default:
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}

func formatUploadLimit(bytes int64) string {
	const mb = 1024 * 1024
	if bytes <= 0 {
		return "0MB"
	}
	value := bytes / mb
	if value <= 0 {
		value = 1
	}
	return strconv.FormatInt(value, 10) + "MB"
}
