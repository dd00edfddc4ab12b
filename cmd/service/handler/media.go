package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/response"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/utils"
)

type UploadResponse struct {
	URL string `json:"url"`
}

func (s *HttpSrv) UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.APIError(c, errors.New("UploadMedia.FormFile", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}
	body, err := file.Open()
	if err != nil {
		response.APIError(c, errors.New("UploadMedia.Open", i18n.ERROR_INTERNAL, err))
		return
	}
	defer body.Close()

	url, err := v1.NewMediaLogic(c, s.Core).Upload(file.Filename, file.Header.Get("Content-Type"), file.Size, body)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, UploadResponse{URL: url})
}

type UploadKeyRequest struct {
	FileName    string `json:"file_name" form:"file_name" binding:"required"`
	ContentType string `json:"content_type" form:"content_type"`
}

func (s *HttpSrv) GenUploadKey(c *gin.Context) {
	var req UploadKeyRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	key, err := v1.NewMediaLogic(c, s.Core).UploadKey(req.FileName, req.ContentType)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, key)
}
