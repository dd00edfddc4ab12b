package v1

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/logic/v1/process"
	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
	"github.com/breeew/folio-api/pkg/utils"
)

// StudioLogic 图片编辑、图片生成与视频任务
type StudioLogic struct {
	VisitorInfo
	ctx    context.Context
	core   *core.Core
	videos *process.VideoProcess
}

func NewStudioLogic(ctx context.Context, core *core.Core, videos *process.VideoProcess) *StudioLogic {
	l := &StudioLogic{
		ctx:         ctx,
		core:        core,
		videos:      videos,
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l
}

// DecodeImage 接受 data URL 形式的图片
func DecodeImage(dataURL string) (ai.Image, error) {
	mimeType, data, err := utils.ParseDataURL(strings.TrimSpace(dataURL))
	if err != nil {
		return ai.Image{}, errors.New("DecodeImage.ParseDataURL", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	if !strings.HasPrefix(mimeType, "image/") || len(data) == 0 {
		return ai.Image{}, errors.New("DecodeImage.mimeType", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	return ai.Image{MIMEType: mimeType, Data: data}, nil
}

// EditImage 返回 data:image/png;base64,... 形式的结果
func (l *StudioLogic) EditImage(img ai.Image, prompt string) (string, error) {
	if len(img.Data) == 0 || strings.TrimSpace(prompt) == "" {
		return "", errors.New("StudioLogic.EditImage.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	res, err := l.core.Srv().AI().EditImage(l.ctx, img, prompt)
	l.core.Metrics().ObserveAI(ai.MODEL_IMAGE_EDIT, err)
	if err != nil {
		return "", AIError("StudioLogic.EditImage.AI.EditImage", err)
	}
	return utils.ToDataURL(res.MIMEType, res.Data), nil
}

func (l *StudioLogic) GenerateImage(prompt string, size types.ImageSize) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("StudioLogic.GenerateImage.prompt", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if size == "" {
		size = types.IMAGE_SIZE_1K
	}
	if !size.Valid() {
		return "", errors.New("StudioLogic.GenerateImage.size", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	res, err := l.core.Srv().AI().GenerateImage(l.ctx, prompt, size)
	l.core.Metrics().ObserveAI(ai.MODEL_IMAGE_GENERATE, err)
	if err != nil {
		return "", AIError("StudioLogic.GenerateImage.AI.GenerateImage", err)
	}
	return utils.ToDataURL(res.MIMEType, res.Data), nil
}

func (l *StudioLogic) CreateVideo(img ai.Image, prompt string) (*types.VideoJob, error) {
	if len(img.Data) == 0 {
		return nil, errors.New("StudioLogic.CreateVideo.image", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	job, err := l.videos.Create(l.ctx, l.VisitorID(), img, strings.TrimSpace(prompt))
	if err != nil {
		return nil, AIError("StudioLogic.CreateVideo.VideoProcess.Create", err)
	}
	return &job, nil
}

// videoJob 任务只对创建它的访客可见
func (l *StudioLogic) videoJob(id string) (types.VideoJob, error) {
	job, err := l.videos.Get(l.ctx, id)
	if err != nil {
		if errors.Is(err, process.ErrVideoJobNotFound) {
			return job, errors.New("StudioLogic.videoJob.Get", i18n.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return job, errors.New("StudioLogic.videoJob.Get", i18n.ERROR_INTERNAL, err)
	}
	if job.Visitor != l.VisitorID() {
		return job, errors.New("StudioLogic.videoJob.Visitor", i18n.ERROR_NOTFOUND, nil).Code(http.StatusNotFound)
	}
	return job, nil
}

func (l *StudioLogic) GetVideo(id string) (*types.VideoJob, error) {
	job, err := l.videoJob(id)
	if err != nil {
		return nil, errors.Trace("StudioLogic.GetVideo", err)
	}
	return &job, nil
}

func (l *StudioLogic) CancelVideo(id string) (*types.VideoJob, error) {
	if _, err := l.videoJob(id); err != nil {
		return nil, errors.Trace("StudioLogic.CancelVideo", err)
	}

	job, err := l.videos.Cancel(l.ctx, id)
	if err != nil {
		if errors.Is(err, process.ErrVideoJobFinished) {
			return nil, errors.New("StudioLogic.CancelVideo.Cancel", i18n.ERROR_VIDEO_JOB_FINISHED, err).Code(http.StatusConflict)
		}
		return nil, errors.New("StudioLogic.CancelVideo.Cancel", i18n.ERROR_INTERNAL, err)
	}
	return &job, nil
}

// WatchVideo 推送任务的状态变化，任务结束后通道关闭
func (l *StudioLogic) WatchVideo(id string) (<-chan types.VideoJob, error) {
	if _, err := l.videoJob(id); err != nil {
		return nil, errors.Trace("StudioLogic.WatchVideo", err)
	}

	changes, err := l.videos.Watch(l.ctx, id)
	if err != nil {
		return nil, errors.New("StudioLogic.WatchVideo.Watch", i18n.ERROR_INTERNAL, err)
	}
	return changes, nil
}

// VideoContent 由服务端带上凭证下载，调用方负责关闭
func (l *StudioLogic) VideoContent(id string) (io.ReadCloser, string, error) {
	job, err := l.videoJob(id)
	if err != nil {
		return nil, "", errors.Trace("StudioLogic.VideoContent", err)
	}
	if job.Status != types.VIDEO_JOB_SUCCEEDED || job.VideoURI == "" {
		return nil, "", errors.New("StudioLogic.VideoContent.Status", i18n.ERROR_VIDEO_NOT_AVAILABLE, nil).Code(http.StatusConflict)
	}

	body, contentType, err := l.core.Srv().AI().DownloadVideo(l.ctx, job.VideoURI)
	if err != nil {
		return nil, "", AIError("StudioLogic.VideoContent.AI.DownloadVideo", err)
	}
	return body, contentType, nil
}
