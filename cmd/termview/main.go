package main

import (
	"flag"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/config"
	"github.com/Garsondee/Map-Viewer/internal/render"
	"github.com/Garsondee/Map-Viewer/internal/termview"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

func main() {
	var configPath, recipePath, logPath string
	flag.StringVar(&configPath, "config", "", "TOML configuration file")
	flag.StringVar(&recipePath, "recipe", "", "map recipe file (overrides the config)")
	flag.StringVar(&logPath, "log", "", "write logs to this file; logging is off otherwise")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if recipePath != "" {
		cfg.Map.Recipe = recipePath
	}
	if err := cfg.ApplyLogging(); err != nil {
		log.Fatal(err)
	}
	recipe, err := cfg.Recipe()
	if err != nil {
		log.Fatal(err)
	}
	m, err := worldmap.Generate(recipe)
	if err != nil {
		log.Fatal(err)
	}
	chain, err := cfg.MatcherChain()
	if err != nil {
		log.Fatal(err)
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	screen.EnableMouse()

	comp := render.NewCompositor(render.NewImageCache(cfg.ImageProvider()), chain)
	v := termview.New(screen, m, comp)
	err = v.Run()
	v.Close()
	screen.Fini()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
