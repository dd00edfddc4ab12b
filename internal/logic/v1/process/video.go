package process

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/safe"
	"github.com/breeew/folio-api/pkg/types"
)

const (
	VIDEO_BACKOFF_MULTIPLIER = 1.5

	videoSaveTimeout = 5 * time.Second
)

var (
	ErrVideoJobNotFound = errors.New("video job not found")
	ErrVideoJobFinished = errors.New("video job already finished")

	errVideoPending  = errors.New("video is still generating")
	errVideoCanceled = errors.New("canceled by visitor")
	errVideoDeadline = errors.New("video generation timed out")
	errVideoShutdown = errors.New("service is shutting down")
)

type runningVideo struct {
	cancel context.CancelCauseFunc
	done   chan struct{}
}

// VideoProcess 视频任务在后台轮询，状态持久化在 video_job:<id>
type VideoProcess struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	core   *core.Core
	active *store.Collection[[]string]

	// mu 同时保护 running 与任务最终状态的写入
	mu      sync.Mutex
	running map[string]*runningVideo
	wg      sync.WaitGroup
}

// StartVideoProcess 会接管上次退出时尚未结束的任务
func StartVideoProcess(core *core.Core) *VideoProcess {
	ctx, cancel := context.WithCancelCause(context.Background())
	p := &VideoProcess{
		ctx:     ctx,
		cancel:  cancel,
		core:    core,
		active:  store.NewCollection[[]string](core.Store(), types.KEY_VIDEO_JOBS_ACTIVE, nil),
		running: make(map[string]*runningVideo),
	}
	p.resume()
	return p
}

// Stop 中断所有轮询并等待状态落盘
func (p *VideoProcess) Stop() {
	p.cancel(errVideoShutdown)
	p.wg.Wait()
}

func (p *VideoProcess) deadline() time.Duration {
	return p.core.Cfg().Video.Deadline.Duration
}

func (p *VideoProcess) resume() {
	ctx, cancel := context.WithTimeout(p.ctx, videoSaveTimeout)
	defer cancel()

	ids, err := p.active.Load(ctx)
	if err != nil {
		slog.Error("failed to load active video jobs", slog.String("error", err.Error()))
		return
	}
	for _, id := range ids {
		job, err := p.load(ctx, id)
		if err != nil {
			if errors.Is(err, ErrVideoJobNotFound) {
				p.untrack(ctx, id)
				continue
			}
			slog.Error("failed to load video job", slog.String("job_id", id), slog.String("error", err.Error()))
			continue
		}
		if job.Status.Finished() {
			p.untrack(ctx, id)
			continue
		}

		slog.Info("resume video job", slog.String("job_id", id), slog.String("status", string(job.Status)))
		// 已经超过期限的任务会立即以超时结束
		p.run(job, time.Unix(job.CreatedAt, 0).Add(p.deadline()))
	}
}

func (p *VideoProcess) track(ctx context.Context, id string) error {
	_, err := p.active.Mutate(ctx, func(ids []string) ([]string, error) {
		return lo.Uniq(append(ids, id)), nil
	})
	return err
}

func (p *VideoProcess) untrack(ctx context.Context, id string) {
	_, err := p.active.Mutate(ctx, func(ids []string) ([]string, error) {
		return lo.Without(ids, id), nil
	})
	if err != nil {
		slog.Error("failed to untrack video job", slog.String("job_id", id), slog.String("error", err.Error()))
	}
}

func (p *VideoProcess) load(ctx context.Context, id string) (types.VideoJob, error) {
	raw, err := p.core.Store().Get(ctx, types.VideoJobKey(id))
	if err != nil {
		if store.IsNotFound(err) {
			return types.VideoJob{}, ErrVideoJobNotFound
		}
		return types.VideoJob{}, err
	}

	var record types.VideoJobRecord
	if err = json.Unmarshal(raw, &record); err != nil {
		return types.VideoJob{}, err
	}
	return record.Job(), nil
}

func (p *VideoProcess) expired(job types.VideoJob) bool {
	return time.Now().After(time.Unix(job.CreatedAt, 0).Add(p.deadline()))
}

// Get 没有轮询者且已经超过期限的任务在读取时标记为超时
func (p *VideoProcess) Get(ctx context.Context, id string) (types.VideoJob, error) {
	job, err := p.load(ctx, id)
	if err != nil || job.Status.Finished() || !p.expired(job) {
		return job, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exist := p.running[id]; exist {
		return job, nil
	}
	if job, err = p.load(ctx, id); err != nil || job.Status.Finished() {
		return job, err
	}

	job.Status = types.VIDEO_JOB_FAILED
	job.Message = errVideoDeadline.Error()
	if err = p.save(ctx, job); err != nil {
		return job, err
	}
	p.untrack(ctx, id)
	return job, nil
}

func (p *VideoProcess) save(ctx context.Context, job types.VideoJob) error {
	job.UpdatedAt = time.Now().Unix()
	raw, err := json.Marshal(job.Record())
	if err != nil {
		return err
	}
	return p.core.Store().Set(ctx, types.VideoJobKey(job.ID), raw)
}

// Create 提交生成请求，成功后立即返回任务，轮询在后台进行
func (p *VideoProcess) Create(ctx context.Context, visitorID string, img ai.Image, prompt string) (types.VideoJob, error) {
	if prompt == "" {
		prompt = ai.DEFAULT_VIDEO_PROMPT
	}

	op, err := p.core.Srv().AI().StartVideo(ctx, img, prompt)
	p.core.Metrics().ObserveAI(ai.MODEL_VIDEO, err)
	if err != nil {
		return types.VideoJob{}, err
	}

	now := time.Now()
	job := types.VideoJob{
		ID:        uuid.NewString(),
		Visitor:   visitorID,
		Prompt:    prompt,
		Status:    types.VIDEO_JOB_PENDING,
		Operation: op.Name,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}

	if op.Done {
		job = applyOperation(job, op)
		if err = p.save(ctx, job); err != nil {
			return types.VideoJob{}, err
		}
		return job, nil
	}

	if err = p.save(ctx, job); err != nil {
		return types.VideoJob{}, err
	}
	if err = p.track(ctx, job.ID); err != nil {
		return types.VideoJob{}, err
	}

	p.run(job, now.Add(p.deadline()))
	return job, nil
}

func (p *VideoProcess) run(job types.VideoJob, deadline time.Time) {
	cancelCtx, cancel := context.WithCancelCause(p.ctx)
	taskCtx, stopTimer := context.WithDeadlineCause(cancelCtx, deadline, errVideoDeadline)
	r := &runningVideo{cancel: cancel, done: make(chan struct{})}

	p.mu.Lock()
	p.running[job.ID] = r
	p.mu.Unlock()

	p.wg.Add(1)
	go safe.Run(func() {
		defer func() {
			p.mu.Lock()
			delete(p.running, job.ID)
			p.mu.Unlock()
			stopTimer()
			cancel(nil)
			close(r.done)
			p.wg.Done()
		}()
		p.poll(taskCtx, job)
	})
}

func applyOperation(job types.VideoJob, op *ai.VideoOperation) types.VideoJob {
	switch {
	case op.Error != "":
		job.Status = types.VIDEO_JOB_FAILED
		job.Message = op.Error
	case op.VideoURI == "":
		job.Status = types.VIDEO_JOB_FAILED
		job.Message = "no video in response"
	default:
		job.Status = types.VIDEO_JOB_SUCCEEDED
		job.VideoURI = op.VideoURI
	}
	return job
}

func (p *VideoProcess) newBackOff() *backoff.ExponentialBackOff {
	cfg := p.core.Cfg().Video
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval.Duration
	b.MaxInterval = cfg.MaxInterval.Duration
	b.Multiplier = VIDEO_BACKOFF_MULTIPLIER
	b.RandomizationFactor = 0
	return b
}

func (p *VideoProcess) poll(ctx context.Context, job types.VideoJob) {
	b := p.newBackOff()

	// 提交后先等待一个初始间隔再查询
	select {
	case <-ctx.Done():
		p.finish(job, ctx, nil)
		return
	case <-time.After(b.InitialInterval):
	}

	job.Status = types.VIDEO_JOB_RUNNING
	if err := p.save(ctx, job); err != nil {
		slog.Error("failed to save video job", slog.String("job_id", job.ID), slog.String("error", err.Error()))
	}

	op, err := backoff.Retry(ctx, func() (*ai.VideoOperation, error) {
		job.Attempts++
		op, err := p.core.Srv().AI().PollVideo(ctx, job.Operation)
		p.core.Metrics().ObserveAI(ai.MODEL_VIDEO, err)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if !op.Done {
			return nil, errVideoPending
		}
		return op, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(0), backoff.WithNotify(func(err error, next time.Duration) {
		if err := p.save(ctx, job); err != nil {
			slog.Error("failed to save video job", slog.String("job_id", job.ID), slog.String("error", err.Error()))
		}
		slog.Debug("video job still running", slog.String("job_id", job.ID), slog.Int("attempts", job.Attempts), slog.Duration("next", next))
	}))
	if err != nil {
		p.finish(job, ctx, err)
		return
	}
	p.finish(applyOperation(job, op), ctx, nil)
}

// finish 写入最终状态并释放任务，与 Cancel 共用 mu
func (p *VideoProcess) finish(job types.VideoJob, taskCtx context.Context, err error) {
	if !job.Status.Finished() {
		switch cause := context.Cause(taskCtx); {
		case errors.Is(cause, errVideoCanceled):
			job.Status = types.VIDEO_JOB_CANCELED
			job.Message = cause.Error()
		case cause != nil:
			job.Status = types.VIDEO_JOB_FAILED
			job.Message = cause.Error()
		case err != nil:
			job.Status = types.VIDEO_JOB_FAILED
			job.Message = err.Error()
		}
	}

	// taskCtx 可能已经结束，这里使用独立的超时
	ctx, cancel := context.WithTimeout(context.Background(), videoSaveTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.running, job.ID)
	if err := p.save(ctx, job); err != nil {
		slog.Error("failed to save video job", slog.String("job_id", job.ID), slog.String("error", err.Error()))
		return
	}
	p.untrack(ctx, job.ID)
	slog.Info("video job finished", slog.String("job_id", job.ID), slog.String("status", string(job.Status)), slog.Int("attempts", job.Attempts))
}

// Cancel 只能取消未结束的任务，返回取消后的状态
func (p *VideoProcess) Cancel(ctx context.Context, id string) (types.VideoJob, error) {
	p.mu.Lock()
	r, exist := p.running[id]
	if !exist {
		defer p.mu.Unlock()
		return p.cancelDetached(ctx, id)
	}
	p.mu.Unlock()

	r.cancel(errVideoCanceled)
	select {
	case <-r.done:
	case <-ctx.Done():
		return types.VideoJob{}, ctx.Err()
	}

	job, err := p.load(ctx, id)
	if err != nil {
		return job, err
	}
	// 轮询先一步拿到了结果
	if job.Status != types.VIDEO_JOB_CANCELED {
		return job, ErrVideoJobFinished
	}
	return job, nil
}

// cancelDetached 处理不在本进程轮询的任务，调用方持有 mu
func (p *VideoProcess) cancelDetached(ctx context.Context, id string) (types.VideoJob, error) {
	job, err := p.load(ctx, id)
	if err != nil {
		return job, err
	}
	if job.Status.Finished() {
		return job, ErrVideoJobFinished
	}

	job.Status = types.VIDEO_JOB_CANCELED
	job.Message = errVideoCanceled.Error()
	if err = p.save(ctx, job); err != nil {
		return job, err
	}
	p.untrack(ctx, id)
	return job, nil
}

// Watch 先推送当前状态，之后每次写入推送一次，任务结束或 ctx 结束时关闭
func (p *VideoProcess) Watch(ctx context.Context, id string) (<-chan types.VideoJob, error) {
	ctx, cancel := context.WithCancel(ctx)
	// 先订阅再读取，避免漏掉两者之间的变更
	events, err := p.core.Store().Subscribe(ctx, types.VideoJobKey(id))
	if err != nil {
		cancel()
		return nil, err
	}
	job, err := p.Get(ctx, id)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan types.VideoJob, 1)
	out <- job
	if job.Status.Finished() {
		cancel()
		close(out)
		return out, nil
	}

	go func() {
		defer cancel()
		defer close(out)
		for e := range events {
			if e.Deleted {
				return
			}
			var record types.VideoJobRecord
			if err := json.Unmarshal(e.Value, &record); err != nil {
				slog.Warn("invalid video job event", slog.String("job_id", id), slog.String("error", err.Error()))
				continue
			}
			job := record.Job()
			select {
			case out <- job:
			case <-ctx.Done():
				return
			}
			if job.Status.Finished() {
				return
			}
		}
	}()
	return out, nil
}
