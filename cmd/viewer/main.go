package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/config"
	"github.com/Garsondee/Map-Viewer/internal/game"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

func main() {
	var configPath, recipePath string
	flag.StringVar(&configPath, "config", "", "TOML configuration file")
	flag.StringVar(&recipePath, "recipe", "", "map recipe file (overrides the config)")
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
	g, err := game.New(cfg, m)
	if err != nil {
		log.WithError(err).Fatal("cannot open map")
	}
	defer g.Close()
	log.WithFields(log.Fields{"recipe": recipe.Name, "rows": recipe.Rows, "cols": recipe.Cols}).Info("map generated")

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
