package i18n

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bobwong89757/numguess/cache"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

//go:embed locales/*.yaml
var embedded embed.FS

var ErrUnknownKey = errors.New("i18n: unknown key")

// Supported 内置支持的语言，第一个为默认语言
var Supported = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("zh-CN"),
}

var matcher = language.NewMatcher(Supported)

// 已加载的语言包，键为 "目录|语言"
var bundles cache.Cache[string, *viper.Viper]

type I18n struct {
	viper *viper.Viper
	tag   language.Tag
}

// SetLang
//
//	@Description: 设置语言，加载对应的语言文件
//	@param lang 语言代码，如 "zh-CN", "en-US"；为空时使用默认语言，不支持的语言回退到默认语言
//	@param dir 语言文件目录，为空时使用内置语言包
func (i *I18n) SetLang(lang string, dir string) error {
	tag := Supported[0]
	if lang != "" {
		want, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("解析语言失败 [%s]: %w", lang, err)
		}
		_, idx, _ := matcher.Match(want)
		tag = Supported[idx]
	}

	v, err := bundles.GetOrLoad(dir+"|"+tag.String(), func() (*viper.Viper, error) {
		return load(tag, dir)
	})
	if err != nil {
		return err
	}
	i.viper = v
	i.tag = tag
	return nil
}

func load(tag language.Tag, dir string) (*viper.Viper, error) {
	name := tag.String() + ".yaml"

	var data []byte
	var err error
	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, name))
	} else {
		data, err = embedded.ReadFile("locales/" + name)
	}
	if err != nil {
		return nil, fmt.Errorf("读取语言文件失败 [%s]: %w", tag, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("解析语言文件失败 [%s]: %w", tag, err)
	}
	return v, nil
}

// Lang 当前语言
func (i *I18n) Lang() language.Tag {
	return i.tag
}

// GetString 获取字符串类型的翻译文本，键不存在时返回键名本身
// key: 翻译键名，支持嵌套访问（如 "game.won"）
func (i *I18n) GetString(key string) string {
	if i.viper == nil || !i.viper.IsSet(key) {
		return key
	}
	return i.viper.GetString(key)
}

// Lookup 获取翻译文本，键不存在时返回 ErrUnknownKey
func (i *I18n) Lookup(key string) (string, error) {
	if i.viper == nil || !i.viper.IsSet(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return i.viper.GetString(key), nil
}

// IsSet 检查翻译键是否存在
func (i *I18n) IsSet(key string) bool {
	if i.viper == nil {
		return false
	}
	return i.viper.IsSet(key)
}

// AllTranslations 返回所有翻译
func (i *I18n) AllTranslations() map[string]interface{} {
	if i.viper == nil {
		return nil
	}
	return i.viper.AllSettings()
}
