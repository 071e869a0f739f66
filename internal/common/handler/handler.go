// Package handler provides shared HTTP handler helpers.
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/utils"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// HandleError maps an application error onto the response envelope.
func HandleError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr.Code == apperrors.ErrUnknown.Code || appErr.Code == apperrors.ErrInternalError.Code {
		logger.Error("unhandled error",
			logger.String("path", c.FullPath()),
			logger.Err(err),
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// MustSucceed sends data on success, or maps the error.
func MustSucceed(c *gin.Context, data interface{}, err error) {
	if err != nil {
		HandleError(c, err)
		return
	}
	response.Success(c, data)
}

// MustSucceedPage sends a page on success, or maps the error.
func MustSucceedPage(c *gin.Context, list interface{}, total int64, page, pageSize int, err error) {
	if err != nil {
		HandleError(c, err)
		return
	}
	response.SuccessPage(c, list, total, page, pageSize)
}

// ParseDate parses a yyyy-mm-dd date in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidParams.WithMessage("invalid date, expected yyyy-mm-dd")
	}
	return t, nil
}

// BindPagination reads page/page_size query parameters.
func BindPagination(c *gin.Context) utils.Pagination {
	var p utils.Pagination
	type query struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	var q query
	_ = c.ShouldBindQuery(&q)
	p.Page = q.Page
	p.PageSize = q.PageSize
	p.Normalize()
	return p
}
