package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"video-hosting-service/pkg/errno"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Failed 失败响应，根据错误码映射HTTP状态
func Failed(ctx *gin.Context, err error) {
	code, message := errno.ErrInternalServer.Code, errno.ErrInternalServer.Message

	var e *errno.Errno
	var biz *errno.BizError
	switch {
	case errors.As(err, &biz):
		code, message = biz.Errno.Code, biz.Errno.Message
	case errors.As(err, &e):
		code, message = e.Code, e.Message
	case err != nil:
		message = err.Error()
	}

	ctx.JSON(httpStatus(code), Response{Code: code, Message: message})
}

// NotFound 统一的404响应，不泄露未命中的具体原因
func NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, Response{
		Code:    errno.ErrNotFound.Code,
		Message: errno.ErrNotFound.Message,
	})
}

// httpStatus 业务错误码到HTTP状态码的映射
func httpStatus(code int) int {
	switch {
	case code >= 200 && code < 600:
		return code
	case code == errno.ErrVideoNotFound.Code:
		return http.StatusNotFound
	case code >= 20000 && code < 30000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
