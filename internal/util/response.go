package util

import (
	"errors"
	"exam_prep_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError 将服务层错误分类映射为 HTTP 响应
func HandleServiceError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		generationErr *GenerationError
		persistErr    *PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Msg)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		Unauthorized(c)
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrSubjectNotFound),
		errors.Is(err, ErrInsightNotFound), errors.Is(err, ErrNoActiveSession),
		errors.Is(err, ErrQuestionNotInSet):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSelectAfterReveal):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrTransactionTimeout):
		Error(c, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &generationErr):
		logger.Log.Error("question generation failed", zap.Int("index", generationErr.Index), zap.Error(err))
		Error(c, http.StatusBadGateway, generationErr.Error())
	case errors.As(err, &persistErr):
		logger.Log.Error("persistence failure", zap.String("op", persistErr.Op), zap.Error(err))
		Error(c, http.StatusServiceUnavailable, "storage unavailable")
	default:
		LogInternalError(c, err)
	}
}
