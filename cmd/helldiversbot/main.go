package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/EgorLis/Helldiversbot/internal/bot"
)

func main() {
	path := "conf/hd2config.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	b := bot.New()

	// конфиг создаётся с дефолтами, если его нет
	if err := b.UseConfig(path); err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
	defer b.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("running… press Ctrl+C to stop")

	<-ctx.Done()
}
