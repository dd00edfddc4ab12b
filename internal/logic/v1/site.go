package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
)

const SAMPLE_VIDEO_HOST = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"

var defaultHeroVideos = map[types.HeroSection]string{
	types.HERO_HOME:   SAMPLE_VIDEO_HOST + "ForBiggerJoyrides.mp4",
	types.HERO_CAMPUS: SAMPLE_VIDEO_HOST + "ForBiggerJoyrides.mp4",
	types.HERO_WORLD:  SAMPLE_VIDEO_HOST + "ForBiggerEscapes.mp4",
}

type HeroMedia struct {
	Section    types.HeroSection `json:"section"`
	URL        string            `json:"url"`
	Overridden bool              `json:"overridden"`
}

// SiteLogic 各栏目顶部的背景视频，值以原始字符串保存
type SiteLogic struct {
	VisitorInfo
	ctx  context.Context
	core *core.Core
}

func NewSiteLogic(ctx context.Context, core *core.Core) *SiteLogic {
	l := &SiteLogic{
		ctx:         ctx,
		core:        core,
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l
}

func checkHeroSection(section types.HeroSection) error {
	if !section.Valid() {
		return errors.New("checkHeroSection", i18n.ERROR_INVALID_SECTION, nil).Code(http.StatusBadRequest)
	}
	return nil
}

func (l *SiteLogic) GetHero(section types.HeroSection) (*HeroMedia, error) {
	if err := checkHeroSection(section); err != nil {
		return nil, errors.Trace("SiteLogic.GetHero", err)
	}

	raw, err := l.core.Store().Get(l.ctx, section.StorageKey())
	if err != nil && !store.IsNotFound(err) {
		return nil, errors.New("SiteLogic.GetHero.Get", i18n.ERROR_INTERNAL, err)
	}

	if len(raw) == 0 {
		return &HeroMedia{Section: section, URL: defaultHeroVideos[section]}, nil
	}
	return &HeroMedia{Section: section, URL: string(raw), Overridden: true}, nil
}

// SetHero url 为空时保持原值
func (l *SiteLogic) SetHero(section types.HeroSection, url string) (*HeroMedia, error) {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return nil, errors.Trace("SiteLogic.SetHero", err)
	}
	if err := checkHeroSection(section); err != nil {
		return nil, errors.Trace("SiteLogic.SetHero", err)
	}

	if url = strings.TrimSpace(url); url != "" {
		if err := l.core.Store().Set(l.ctx, section.StorageKey(), []byte(url)); err != nil {
			return nil, errors.New("SiteLogic.SetHero.Set", i18n.ERROR_INTERNAL, err)
		}
	}
	return l.GetHero(section)
}

func (l *SiteLogic) ResetHero(section types.HeroSection) (*HeroMedia, error) {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return nil, errors.Trace("SiteLogic.ResetHero", err)
	}
	if err := checkHeroSection(section); err != nil {
		return nil, errors.Trace("SiteLogic.ResetHero", err)
	}

	if err := l.core.Store().Delete(l.ctx, section.StorageKey()); err != nil && !store.IsNotFound(err) {
		return nil, errors.New("SiteLogic.ResetHero.Delete", i18n.ERROR_INTERNAL, err)
	}
	return l.GetHero(section)
}
