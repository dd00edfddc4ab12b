package i18n

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var messageFS embed.FS

type Localizer struct {
	bundle     *goi18n.Bundle
	localizers map[string]*goi18n.Localizer
	matcher    language.Matcher
	langs      []string
}

// NewLocalizer 加载内置的语言包，langs 为允许的语言，第一个未匹配时回退到 DEFAULT_LANG
func NewLocalizer(langs ...string) *Localizer {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	l := &Localizer{
		bundle:     bundle,
		localizers: make(map[string]*goi18n.Localizer),
	}

	tags := []language.Tag{language.Make(DEFAULT_LANG)}
	l.langs = []string{DEFAULT_LANG}
	for _, lang := range langs {
		if lang == DEFAULT_LANG {
			continue
		}
		tags = append(tags, language.Make(lang))
		l.langs = append(l.langs, lang)
	}

	for _, lang := range l.langs {
		if _, err := bundle.LoadMessageFileFS(messageFS, fmt.Sprintf("active.%s.toml", lang)); err != nil {
			panic(fmt.Errorf("failed to load i18n message file of %s: %w", lang, err))
		}
		l.localizers[lang] = goi18n.NewLocalizer(bundle, lang)
	}
	l.matcher = language.NewMatcher(tags)
	return l
}

// Match 根据 Accept-Language 选出支持的语言
func (l *Localizer) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DEFAULT_LANG
	}
	_, idx, _ := l.matcher.Match(tags...)
	return l.langs[idx]
}

func (l *Localizer) Get(lang, messageID string) string {
	localizer, ok := l.localizers[lang]
	if !ok {
		localizer = l.localizers[DEFAULT_LANG]
	}
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
