package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/response"
	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
	"github.com/breeew/folio-api/pkg/utils"
)

func (s *HttpSrv) Explore(c *gin.Context) {
	var req v1.ExploreArgs
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	res, err := v1.NewExploreLogic(c, s.Core).Explore(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

type ImageRequest struct {
	Image  string `json:"image" form:"image"`
	Prompt string `json:"prompt" form:"prompt"`
}

type ImageResponse struct {
	Image string `json:"image"`
}

// readImage 同时支持 multipart 上传与 data URL 两种形式
func readImage(c *gin.Context, req *ImageRequest) (ai.Image, error) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		req.Prompt = c.PostForm("prompt")
		file, err := c.FormFile("image")
		if err != nil {
			if req.Image = c.PostForm("image"); req.Image != "" {
				return v1.DecodeImage(req.Image)
			}
			return ai.Image{}, errors.New("readImage.FormFile", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
		f, err := file.Open()
		if err != nil {
			return ai.Image{}, errors.New("readImage.Open", i18n.ERROR_INTERNAL, err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, ai.MAX_IMAGE_SIZE+1))
		if err != nil {
			return ai.Image{}, errors.New("readImage.ReadAll", i18n.ERROR_INTERNAL, err)
		}
		if len(data) > ai.MAX_IMAGE_SIZE {
			return ai.Image{}, errors.New("readImage.size", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusRequestEntityTooLarge)
		}
		mimeType := file.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}
		if !strings.HasPrefix(mimeType, "image/") {
			return ai.Image{}, errors.New("readImage.mimeType", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
		}
		return ai.Image{MIMEType: mimeType, Data: data}, nil
	}

	if err := utils.BindArgsWithGin(c, req); err != nil {
		return ai.Image{}, err
	}
	return v1.DecodeImage(req.Image)
}

func (s *HttpSrv) EditImage(c *gin.Context) {
	var req ImageRequest
	img, err := readImage(c, &req)
	if err != nil {
		response.APIError(c, err)
		return
	}

	res, err := v1.NewStudioLogic(c, s.Core, s.Videos).EditImage(img, req.Prompt)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ImageResponse{Image: res})
}

type GenerateImageRequest struct {
	Prompt string          `json:"prompt" form:"prompt"`
	Size   types.ImageSize `json:"size" form:"size"`
}

func (s *HttpSrv) GenerateImage(c *gin.Context) {
	var req GenerateImageRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	res, err := v1.NewStudioLogic(c, s.Core, s.Videos).GenerateImage(req.Prompt, req.Size)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ImageResponse{Image: res})
}

func (s *HttpSrv) CreateVideo(c *gin.Context) {
	var req ImageRequest
	img, err := readImage(c, &req)
	if err != nil {
		response.APIError(c, err)
		return
	}

	job, err := v1.NewStudioLogic(c, s.Core, s.Videos).CreateVideo(img, req.Prompt)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, job)
}

func (s *HttpSrv) GetVideo(c *gin.Context) {
	job, err := v1.NewStudioLogic(c, s.Core, s.Videos).GetVideo(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, job)
}

func (s *HttpSrv) CancelVideo(c *gin.Context) {
	job, err := v1.NewStudioLogic(c, s.Core, s.Videos).CancelVideo(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, job)
}

// VideoEvents 以 SSE 推送任务状态，任务结束后关闭
func (s *HttpSrv) VideoEvents(c *gin.Context) {
	changes, err := v1.NewStudioLogic(detachedContext(c), s.Core, s.Videos).WatchVideo(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case job, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("video", job)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *HttpSrv) VideoContent(c *gin.Context) {
	body, contentType, err := v1.NewStudioLogic(c, s.Core, s.Videos).VideoContent(c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "video/mp4"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
		"Cache-Control": "private, max-age=3600",
	})
}

var voiceUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Voice 先建立模型会话，成功后才升级连接，失败时仍能返回普通的 http 错误
func (s *HttpSrv) Voice(c *gin.Context) {
	logic := v1.NewVoiceLogic(detachedContext(c), s.Core)
	session, err := logic.Connect()
	if err != nil {
		response.APIError(c, err)
		return
	}

	conn, err := voiceUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		session.Close()
		return
	}

	if err = logic.Relay(conn, session); err != nil {
		c.Error(err)
	}
}
