package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bobwong89757/numguess/conf"
	"github.com/bobwong89757/numguess/game"
	"github.com/bobwong89757/numguess/i18n"
	"github.com/bobwong89757/numguess/log"
	"github.com/bobwong89757/numguess/util"
	"github.com/spf13/pflag"
)

const procName = "numguess"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run 返回进程退出码：0 猜中或 --help，1 运行失败，2 参数或配置错误
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := conf.Load(conf.NewFlagSet(procName, stderr), args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := log.MLog.InitLog(cfg.Log, procName, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.MLog.Close()
	logger := log.MLog.GetLog()

	tr := &i18n.I18n{}
	if err := tr.SetLang(cfg.Lang, cfg.LocaleDir); err != nil {
		logger.Errorw("load locale", "lang", cfg.Lang, "dir", cfg.LocaleDir, "err", err)
		fmt.Fprintln(stderr, err)
		return 1
	}

	secret := util.GetRandomRange(cfg.Min, cfg.Max)
	logger.Debugw("game started", "min", cfg.Min, "max", cfg.Max, "lang", tr.Lang().String())

	player := game.NewPlayer(game.New(secret), stdin, stdout, tr,
		game.WithLogger(logger),
		game.WithShowSecret(cfg.ShowSecret),
	)
	if _, err := player.Run(); err != nil {
		logger.Warnw("game aborted", "err", err)
		return 1
	}
	return 0
}
