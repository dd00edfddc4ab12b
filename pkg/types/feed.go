package types

type FeedType string

const (
	FEED_TYPE_CAMPUS    FeedType = "campus"
	FEED_TYPE_ADVENTURE FeedType = "adventure"
	FEED_TYPE_KNOWLEDGE FeedType = "knowledge"
)

// FeedItem 首页信息流条目，Data 为 Album 或 KnowledgeItem
type FeedItem struct {
	Type FeedType `json:"type"`
	Data any      `json:"data"`
	date string
}

func NewFeedItem(t FeedType, data any, date string) FeedItem {
	return FeedItem{Type: t, Data: data, date: date}
}

func (f FeedItem) Date() string {
	return f.date
}

type SectionMatch struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type SearchResult struct {
	Query        string          `json:"query"`
	Language     string          `json:"language,omitempty"`
	SectionMatch *SectionMatch   `json:"section_match"`
	Campus       []Album         `json:"campus"`
	Adventure    []Album         `json:"adventure"`
	Knowledge    []KnowledgeItem `json:"knowledge"`
}
