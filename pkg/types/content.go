package types

// Album 相册，校园生活与闯荡世界共用
type Album struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	CoverURL    string   `json:"coverUrl"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images"`
	Likes       int      `json:"likes"`
}

func (a Album) GetID() string   { return a.ID }
func (a Album) GetDate() string { return a.Date }

type KnowledgeItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Likes    int      `json:"likes"`
}

func (k KnowledgeItem) GetID() string   { return k.ID }
func (k KnowledgeItem) GetDate() string { return k.Date }

type GuestbookEntry struct {
	ID      string           `json:"id"`
	Author  string           `json:"author"`
	Content string           `json:"content"`
	Date    string           `json:"date"`
	Likes   int              `json:"likes"`
	Replies []GuestbookReply `json:"replies"`
}

func (g GuestbookEntry) GetID() string { return g.ID }

type GuestbookReply struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

type Award struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProfileData struct {
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar"`
	Institution  string   `json:"institution"`
	FieldOfStudy string   `json:"fieldOfStudy"`
	Location     string   `json:"location"`
	Email        string   `json:"email"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	Awards       []Award  `json:"awards"`
}

// Likeable 可点赞的内容
type Likeable interface {
	GetID() string
}
