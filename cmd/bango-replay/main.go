// Command bango-replay runs an input script against a layout on a headless
// surface and prints one line per swipe, visibility notification and mark.
//
//	bango-replay -layout layout.toml -script swipe.yaml [-watch] [-debug]
//
// With -watch, the replay reruns whenever either file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	layoutPath := flag.String("layout", "layout.toml", "layout file (toml, yaml or json)")
	scriptPath := flag.String("script", "", "input script (json or yaml)")
	watch := flag.Bool("watch", false, "rerun when the layout or script changes")
	debug := flag.Bool("debug", false, "enable bango debug diagnostics on stderr")
	flag.Parse()

	if *scriptPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if !*watch {
		if err := runOnce(*layoutPath, *scriptPath, os.Stdout, *debug); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := watchFiles(ctx, []string{*layoutPath, *scriptPath}, func() {
		if err := runOnce(*layoutPath, *scriptPath, os.Stdout, *debug); err != nil {
			log.Print(err)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
}

func runOnce(layoutPath, scriptPath string, out io.Writer, debug bool) error {
	l, err := loadLayout(layoutPath)
	if err != nil {
		return err
	}
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	fmt.Fprintf(out, "--- %s against %s\n", scriptPath, layoutPath)
	return replay(l, script, out, debug)
}
