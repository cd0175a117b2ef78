package conf

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bobwong89757/numguess/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrInvalidRange    = errors.New("invalid range: min must not exceed max")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidLogType  = errors.New("invalid log type")
)

// logKeys 传给 log.InitLog 的配置项
var logKeys = []string{"level", "type", "color", "dir", "async", "maxAge", "rotationTime", "rotationCount", "rotationFormat"}

// logDefaults 日志默认值，配置文件中显式留空时同样回退到这些值
var logDefaults = map[string]string{
	"level": "warn",
	"type":  "console",
	"dir":   "./logs",
}

// Config 游戏运行配置
type Config struct {
	Min        int
	Max        int
	ShowSecret bool
	Lang       string
	LocaleDir  string
	Log        map[string]string
}

// NewFlagSet 创建命令行参数，未注册到全局 pflag.CommandLine
func NewFlagSet(name string, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [options]\n\nGuess the secret number. Type one whole number per line.\n\nOptions:\n", name)
		fs.PrintDefaults()
	}

	fs.StringP("config", "c", "", "Path to a config file (yaml, toml, json).")
	fs.Int("min", 1, "Lowest possible secret number.")
	fs.Int("max", 20, "Highest possible secret number.")
	fs.Bool("show-secret", false, "Print the secret number before the first guess.")
	fs.String("lang", "en-US", "Language for feedback messages.")
	fs.String("locales", "", "Directory with <lang>.yaml locale files; empty uses the built-in ones.")
	fs.String("log-level", "warn", "Log level: debug, info, warn, error.")
	fs.String("log-type", "console", "Log output: console (stderr), file, hybrid, off.")
	fs.String("log-dir", "./logs", "Directory for file logs.")
	return fs
}

// Load
//
//	@Description: 解析命令行参数并读取配置文件，优先级：命令行 > 配置文件 > 默认值
//	@param fs NewFlagSet 创建的参数集
//	@param args 命令行参数（不含程序名）
//	@return pflag.ErrHelp 表示用户请求了帮助
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	bindings := map[string]string{
		"game.min":         "min",
		"game.max":         "max",
		"game.show_secret": "show-secret",
		"lang":             "lang",
		"locales":          "locales",
		"log.level":        "log-level",
		"log.type":         "log-type",
		"log.dir":          "log-dir",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg := &Config{
		Min:        v.GetInt("game.min"),
		Max:        v.GetInt("game.max"),
		ShowSecret: v.GetBool("game.show_secret"),
		Lang:       v.GetString("lang"),
		LocaleDir:  v.GetString("locales"),
		Log:        make(map[string]string, len(logKeys)),
	}
	for _, k := range logKeys {
		s := v.GetString("log." + k)
		if s == "" {
			s = logDefaults[k]
		}
		if s != "" {
			cfg.Log[k] = s
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.min", 1)
	v.SetDefault("game.max", 20)
	v.SetDefault("game.show_secret", false)
	v.SetDefault("lang", "en-US")
	v.SetDefault("locales", "")
	for k, def := range logDefaults {
		v.SetDefault("log."+k, def)
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Min > c.Max {
		return fmt.Errorf("%w (min=%d, max=%d)", ErrInvalidRange, c.Min, c.Max)
	}
	if level := strings.ToLower(c.Log["level"]); !slices.Contains(log.Levels, level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log["level"])
	}
	if typ := strings.ToLower(c.Log["type"]); !slices.Contains(log.Types, typ) {
		return fmt.Errorf("%w: %q", ErrInvalidLogType, c.Log["type"])
	}
	return nil
}
