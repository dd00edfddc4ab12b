package types

type ImageSize string

const (
	IMAGE_SIZE_1K ImageSize = "1K"
	IMAGE_SIZE_2K ImageSize = "2K"
	IMAGE_SIZE_4K ImageSize = "4K"
)

func (s ImageSize) Valid() bool {
	switch s {
	case IMAGE_SIZE_1K, IMAGE_SIZE_2K, IMAGE_SIZE_4K:
		return true
	}
	return false
}

type ExploreMode string

const (
	EXPLORE_MODE_SEARCH ExploreMode = "search"
	EXPLORE_MODE_MAPS   ExploreMode = "maps"
)

type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type ExploreResult struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}

type VideoJobStatus string

const (
	VIDEO_JOB_PENDING   VideoJobStatus = "pending"
	VIDEO_JOB_RUNNING   VideoJobStatus = "running"
	VIDEO_JOB_SUCCEEDED VideoJobStatus = "succeeded"
	VIDEO_JOB_FAILED    VideoJobStatus = "failed"
	VIDEO_JOB_CANCELED  VideoJobStatus = "canceled"
)

func (s VideoJobStatus) Finished() bool {
	return s == VIDEO_JOB_SUCCEEDED || s == VIDEO_JOB_FAILED || s == VIDEO_JOB_CANCELED
}

type VideoJob struct {
	ID        string         `json:"id"`
	Visitor   string         `json:"-"`
	Prompt    string         `json:"prompt"`
	Status    VideoJobStatus `json:"status"`
	Message   string         `json:"message,omitempty"`
	VideoURI  string         `json:"-"`
	Operation string         `json:"-"`
	Attempts  int            `json:"attempts"`
	CreatedAt int64          `json:"created_at"`
	UpdatedAt int64          `json:"updated_at"`
}

// VideoJobRecord 是任务的持久化形态，包含不对外暴露的字段
type VideoJobRecord struct {
	VideoJob
	Visitor   string `json:"visitor"`
	VideoURI  string `json:"video_uri"`
	Operation string `json:"operation"`
}

func (j VideoJob) Record() VideoJobRecord {
	return VideoJobRecord{VideoJob: j, Visitor: j.Visitor, VideoURI: j.VideoURI, Operation: j.Operation}
}

func (r VideoJobRecord) Job() VideoJob {
	j := r.VideoJob
	j.Visitor = r.Visitor
	j.VideoURI = r.VideoURI
	j.Operation = r.Operation
	return j
}

// KEY_VIDEO_JOBS_ACTIVE 尚未结束的任务 id，重启后据此恢复轮询
const KEY_VIDEO_JOBS_ACTIVE = "video_jobs_active"

func VideoJobKey(id string) string {
	return "video_job:" + id
}
