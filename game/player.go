package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var ErrInputClosed = errors.New("game: input closed before the secret was guessed")

// maxLineLen 单行输入上限，超出部分直接丢弃并按无效输入处理
const maxLineLen = 4096

// 反馈文本的翻译键
const (
	KeySecret  = "game.secret"
	KeyTooHigh = "game.too_high"
	KeyTooLow  = "game.too_low"
	KeyWon     = "game.won"
	KeyInvalid = "game.invalid"
)

// Messages 反馈文本来源，*i18n.I18n 满足该接口
type Messages interface {
	GetString(key string) string
}

// Result 一局游戏的结果
type Result struct {
	Secret   int
	Attempts int
	// Rejected 无法解析为整数的输入行数
	Rejected int
}

type Player struct {
	game       *Game
	in         *bufio.Reader
	out        io.Writer
	msgs       Messages
	logger     *zap.SugaredLogger
	showSecret bool
}

type Option func(*Player)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithShowSecret 开局时先打印秘密数字（调试用）
func WithShowSecret(show bool) Option {
	return func(p *Player) { p.showSecret = show }
}

func NewPlayer(g *Game, in io.Reader, out io.Writer, msgs Messages, opts ...Option) *Player {
	p := &Player{
		game:   g,
		in:     bufio.NewReader(in),
		out:    out,
		msgs:   msgs,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run 逐行读取猜测并输出反馈，直到猜中为止
// 非整数输入会被拒绝并提示重新输入；输入结束仍未猜中时返回 ErrInputClosed
func (p *Player) Run() (Result, error) {
	res := Result{Secret: p.game.Secret()}

	if p.showSecret {
		if err := p.say(fmt.Sprintf(p.msgs.GetString(KeySecret), p.game.Secret())); err != nil {
			return res, err
		}
	}

	for p.game.State() == Guessing {
		line, overlong, err := p.readLine()
		if err != nil {
			res.Attempts = p.game.Attempts()
			if errors.Is(err, io.EOF) {
				return res, ErrInputClosed
			}
			return res, fmt.Errorf("read guess: %w", err)
		}
		if overlong {
			res.Rejected++
			if err := p.reject("overlong", true); err != nil {
				return res, err
			}
			continue
		}

		line = strings.TrimSpace(line)
		n, err := strconv.Atoi(line)
		if err != nil {
			res.Rejected++
			if err := p.reject("input", line); err != nil {
				return res, err
			}
			continue
		}

		outcome, err := p.game.Guess(n)
		if err != nil {
			return res, err
		}
		p.logger.Debugw("guess", "value", n, "outcome", outcome, "attempt", p.game.Attempts())
		if err := p.say(p.msgs.GetString(feedbackKey(outcome))); err != nil {
			return res, err
		}
	}

	res.Attempts = p.game.Attempts()
	p.logger.Infow("game won", "secret", res.Secret, "attempts", res.Attempts, "rejected", res.Rejected)
	return res, nil
}

// readLine 读取一行（不含换行符）；超过 maxLineLen 时返回 overlong，
// line 仅保留前 maxLineLen 字节，其余内容读完即丢弃
func (p *Player) readLine() (line string, overlong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := p.in.ReadLine()
		if err != nil {
			return "", false, err
		}
		if len(buf)+len(chunk) > maxLineLen {
			overlong = true
			chunk = chunk[:maxLineLen-len(buf)]
		}
		buf = append(buf, chunk...)
		if !isPrefix {
			return string(buf), overlong, nil
		}
	}
}

func feedbackKey(o Outcome) string {
	switch o {
	case TooHigh:
		return KeyTooHigh
	case TooLow:
		return KeyTooLow
	default:
		return KeyWon
	}
}

func (p *Player) reject(keysAndValues ...interface{}) error {
	p.logger.Infow("rejected guess", keysAndValues...)
	return p.say(p.msgs.GetString(KeyInvalid))
}

func (p *Player) say(msg string) error {
	if _, err := fmt.Fprintln(p.out, msg); err != nil {
		return fmt.Errorf("write feedback: %w", err)
	}
	return nil
}
