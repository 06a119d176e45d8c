package requests

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agentdesk/internal/domain/query"
	"agentdesk/internal/utils/platformerrors"
)

// GetPaginationFromQuery parses limit, offset, and order query
// parameters into a pagination window.
func GetPaginationFromQuery(reqCtx *gin.Context) (query.Pagination, error) {
	pagination := query.Pagination{}

	if limitStr := reqCtx.Query("limit"); limitStr != "" {
		limit, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || limit < 1 {
			return pagination, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid limit number", nil, "c919775f-808a-457f-9aec-fe02d8aa0f02")
		}
		pagination.Limit = limit
	}

	if offsetStr := reqCtx.Query("offset"); offsetStr != "" {
		offset, err := strconv.ParseInt(offsetStr, 10, 64)
		if err != nil || offset < 0 {
			return pagination, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid offset number", nil, "032529a9-a9e3-4af6-b008-bff06c8e7786")
		}
		pagination.Offset = offset
	}

	pagination.Order = strings.ToLower(strings.TrimSpace(reqCtx.DefaultQuery("order", "desc")))
	return pagination.Normalize(), nil
}
