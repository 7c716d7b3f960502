package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akisawa/go-nus3bank/internal/editor/app"
	"github.com/akisawa/go-nus3bank/internal/editor/config"
)

// run はシグナルで中断できるコンテキストを用意してアプリケーションを実行します
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	return application.Run(ctx)
}
