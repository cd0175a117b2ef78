package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var MLog = &Log{}

// Levels 支持的日志级别
var Levels = []string{"debug", "info", "warn", "error"}

// Types 支持的输出方式
var Types = []string{"console", "file", "hybrid", "off"}

type Log struct {
	logger  *zap.SugaredLogger
	closers []io.Closer
}

// InitLog
//
//	@Description: 根据配置初始化日志
//	@param logConfig 日志配置，支持 level/type/color/dir/async 以及切割参数（见 getWriter）
//	@param logFileName 日志文件名前缀
//	@param console 控制台输出，nil 时使用 os.Stderr（stdout 留给游戏本身）
func (l *Log) InitLog(logConfig map[string]string, logFileName string, console io.Writer) error {
	if console == nil {
		console = os.Stderr
	}
	l.Close()

	// 解析日志级别（默认 warn）
	minLevel := zapcore.WarnLevel
	if levelStr := strings.ToLower(strings.TrimSpace(logConfig["level"])); levelStr != "" {
		if err := minLevel.UnmarshalText([]byte(levelStr)); err != nil {
			return fmt.Errorf("unknown log level %q: %w", levelStr, err)
		}
	}

	levelEncoder := zapcore.CapitalLevelEncoder
	if strings.EqualFold(logConfig["color"], "true") {
		levelEncoder = zapcore.CapitalColorLevelEncoder
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:  "msg",
		LevelKey:    "level",
		EncodeLevel: levelEncoder,
		TimeKey:     "ts",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05"))
		},
		CallerKey:    "file",
		EncodeCaller: zapcore.ShortCallerEncoder,
		EncodeDuration: func(d time.Duration, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendInt64(int64(d) / 1000000)
		},
	})

	globalLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= minLevel
	})

	consoleCore := func() zapcore.Core {
		return zapcore.NewCore(encoder, zapcore.AddSync(console), globalLevel)
	}

	var cores []zapcore.Core
	switch strings.ToLower(logConfig["type"]) {
	case "off":
		l.logger = zap.NewNop().Sugar()
		return nil
	case "file":
		fileCores, err := l.fileCores(encoder, minLevel, logConfig, logFileName)
		if err != nil {
			return err
		}
		cores = append(cores, fileCores...)
	case "hybrid":
		fileCores, err := l.fileCores(encoder, minLevel, logConfig, logFileName)
		if err != nil {
			return err
		}
		cores = append(cores, consoleCore())
		cores = append(cores, fileCores...)
	default:
		cores = append(cores, consoleCore())
	}

	l.logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar()
	return nil
}

// band 单个级别文件覆盖的级别区间 [from, to)
type band struct {
	name     string
	from, to zapcore.Level
}

var bands = []band{
	{"debug", zapcore.DebugLevel, zapcore.InfoLevel},
	{"info", zapcore.InfoLevel, zapcore.WarnLevel},
	{"warn", zapcore.WarnLevel, zapcore.ErrorLevel},
	{"error", zapcore.ErrorLevel, zapcore.InvalidLevel},
}

// fileCores 按级别分别输出到不同文件，低于最小级别的文件不创建
func (l *Log) fileCores(encoder zapcore.Encoder, minLevel zapcore.Level, logConfig map[string]string, logFileName string) ([]zapcore.Core, error) {
	dir := logConfig["dir"]
	if dir == "" {
		dir = "./logs"
	}
	async := strings.EqualFold(logConfig["async"], "true")

	var cores []zapcore.Core
	for _, b := range bands {
		if b.to != zapcore.InvalidLevel && minLevel >= b.to {
			continue
		}
		w, err := getWriter(filepath.Join(dir, fmt.Sprintf("%s_%s.log", logFileName, b.name)), logConfig)
		if err != nil {
			return nil, err
		}
		ws := zapcore.AddSync(w)
		if async {
			aw := newAsyncWriter(ws)
			l.closers = append(l.closers, aw)
			ws = aw
		}
		from, to := b.from, b.to
		enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= minLevel && lvl >= from && (to == zapcore.InvalidLevel || lvl < to)
		})
		cores = append(cores, zapcore.NewCore(encoder, ws, enabler))
	}
	return cores, nil
}

func (l *Log) GetLog() *zap.SugaredLogger {
	if l.logger == nil {
		return zap.NewNop().Sugar()
	}
	return l.logger
}

// Close 刷新日志并关闭异步写入器
func (l *Log) Close() error {
	var err error
	if l.logger != nil {
		_ = l.logger.Sync()
	}
	for _, c := range l.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	l.closers = nil
	return err
}

// rotation 单个日志文件的切割策略
type rotation struct {
	every  time.Duration
	keep   time.Duration // <0 表示不按时间清理
	count  uint          // >0 时按文件个数保留，keep 失效
	layout string        // strftime 格式
}

// parseRotation 从日志配置读取 rotationTime/maxAge/rotationCount/rotationFormat，
// 缺失或非法的值使用默认：按天切割、保留 7 天
func parseRotation(logConfig map[string]string) rotation {
	r := rotation{every: 24 * time.Hour, keep: 7 * 24 * time.Hour}

	if d, err := parseDuration(logConfig["rotationTime"]); err == nil && d > 0 {
		r.every = d
	}
	if days, err := strconv.Atoi(logConfig["maxAge"]); err == nil {
		r.keep = time.Duration(days) * 24 * time.Hour
	}
	if n, err := strconv.Atoi(logConfig["rotationCount"]); err == nil && n > 0 {
		r.count = uint(n)
	}

	r.layout = logConfig["rotationFormat"]
	if r.layout == "" {
		switch {
		case r.every >= 24*time.Hour:
			r.layout = "%Y%m%d"
		case r.every >= time.Hour:
			r.layout = "%Y%m%d%H"
		default:
			r.layout = "%Y%m%d%H%M"
		}
	}
	return r
}

func (r rotation) options(link string) []rotatelogs.Option {
	opts := []rotatelogs.Option{
		rotatelogs.WithLinkName(link),
		rotatelogs.WithRotationTime(r.every),
	}
	// rotatelogs 不允许 maxAge 与 rotationCount 同时生效
	if r.count > 0 {
		return append(opts, rotatelogs.WithMaxAge(-1), rotatelogs.WithRotationCount(r.count))
	}
	if r.keep < 0 {
		return append(opts, rotatelogs.WithMaxAge(-1))
	}
	return append(opts, rotatelogs.WithMaxAge(r.keep))
}

// getWriter 返回按 rotation 切割的文件 writer，filename 为指向当前文件的软链接
func getWriter(filename string, logConfig map[string]string) (io.Writer, error) {
	r := parseRotation(logConfig)
	pattern := strings.TrimSuffix(filename, ".log") + "-" + r.layout + ".log"

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	w, err := rotatelogs.New(pattern, r.options(filename)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create log writer: %w", err)
	}
	return w, nil
}

// parseDuration 解析时间字符串，支持格式：1h, 30m, 24h, 1d, 7d 等
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}
