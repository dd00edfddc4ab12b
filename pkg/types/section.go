package types

// AlbumSection 相册所属栏目
type AlbumSection string

const (
	SECTION_CAMPUS AlbumSection = "campus"
	SECTION_WORLD  AlbumSection = "world"
)

func (s AlbumSection) Valid() bool {
	return s == SECTION_CAMPUS || s == SECTION_WORLD
}

// StorageKey 相册集合的存储 key
func (s AlbumSection) StorageKey() string {
	return string(s) + "_albums"
}

// LikeScope 点赞标记使用的栏目名，闯荡世界沿用 adventure
func (s AlbumSection) LikeScope() LikeScope {
	if s == SECTION_WORLD {
		return LIKE_SCOPE_ADVENTURE
	}
	return LIKE_SCOPE_CAMPUS
}

// FeedType 首页信息流中的内容类型
func (s AlbumSection) FeedType() FeedType {
	if s == SECTION_WORLD {
		return FEED_TYPE_ADVENTURE
	}
	return FEED_TYPE_CAMPUS
}

type LikeScope string

const (
	LIKE_SCOPE_CAMPUS    LikeScope = "campus"
	LIKE_SCOPE_ADVENTURE LikeScope = "adventure"
	LIKE_SCOPE_KNOWLEDGE LikeScope = "knowledge"
	LIKE_SCOPE_GUESTBOOK LikeScope = "guestbook"
)

// HeroSection 可以单独配置背景视频的栏目
type HeroSection string

const (
	HERO_HOME   HeroSection = "home"
	HERO_CAMPUS HeroSection = "campus"
	HERO_WORLD  HeroSection = "world"
)

func (s HeroSection) Valid() bool {
	switch s {
	case HERO_HOME, HERO_CAMPUS, HERO_WORLD:
		return true
	}
	return false
}

func (s HeroSection) StorageKey() string {
	return "site_config_" + string(s) + "_video"
}

const (
	KEY_KNOWLEDGE_ITEMS   = "knowledge_items"
	KEY_GUESTBOOK_ENTRIES = "guestbook_entries"
	KEY_PROFILE_DATA      = "profile_data"
)

const (
	KNOWLEDGE_CATEGORY_ALL     = "全部"
	KNOWLEDGE_CATEGORY_DEFAULT = "IC"
)

var KnowledgeCategories = []string{KNOWLEDGE_CATEGORY_ALL, "IC", "AI", "Tools", "生活"}
