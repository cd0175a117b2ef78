// Package game 猜数字游戏：秘密数字在开局时确定，玩家反复猜测直到猜中
package game

import "errors"

var ErrGameOver = errors.New("game: already won")

// State 游戏状态，只会从 Guessing 迁移到 Won 一次
type State int

const (
	Guessing State = iota
	Won
)

func (s State) String() string {
	switch s {
	case Guessing:
		return "guessing"
	case Won:
		return "won"
	}
	return "unknown"
}

// Outcome 一次猜测的比较结果
type Outcome int

const (
	TooLow Outcome = iota + 1
	TooHigh
	Correct
)

func (o Outcome) String() string {
	switch o {
	case TooLow:
		return "too_low"
	case TooHigh:
		return "too_high"
	case Correct:
		return "correct"
	}
	return "unknown"
}

type Game struct {
	secret   int
	state    State
	attempts int
}

func New(secret int) *Game {
	return &Game{secret: secret}
}

// Guess 将 n 与秘密数字比较，猜中后游戏结束
func (g *Game) Guess(n int) (Outcome, error) {
	if g.state == Won {
		return 0, ErrGameOver
	}
	g.attempts++

	switch {
	case n > g.secret:
		return TooHigh, nil
	case n < g.secret:
		return TooLow, nil
	default:
		g.state = Won
		return Correct, nil
	}
}

func (g *Game) State() State { return g.state }

// Attempts 已接受的猜测次数（含猜中的那次）
func (g *Game) Attempts() int { return g.attempts }

func (g *Game) Secret() int { return g.secret }
