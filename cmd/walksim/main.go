package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"walksim/internal/achievements"
	"walksim/internal/config"
	"walksim/internal/game"
	"walksim/internal/tween"
	"walksim/internal/world"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	scenePath := flag.String("scene", "assets/scenes/house.json", "scene file")
	tuningPath := flag.String("tuning", config.DefaultPath, "tuning file")
	achievementsPath := flag.String("achievements", achievements.DefaultPath, "achievement store, empty keeps it in memory")
	dev := flag.Bool("dev", false, "fail on configuration and scene errors")
	mobile := flag.Bool("mobile", false, "use the mobile device tier")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	flag.Parse()

	tuning, err := config.Load(*tuningPath)
	if err != nil {
		if *dev {
			log.Fatalf("Config: %v", err)
		}
		log.Printf("Config: %v", err)
	}
	if *mobile {
		tuning.Quality.Mobile = true
	}

	w, err := world.LoadFile(*scenePath)
	if err != nil {
		log.Fatalf("Scene: %v", err)
	}
	if err := w.Roles.Validate(); err != nil {
		if *dev {
			log.Fatalf("Scene: %v", err)
		}
		log.Printf("Scene: %v, affected features are disabled", err)
	}

	store, err := achievements.Open(*achievementsPath)
	if err != nil {
		log.Printf("Achievements: %v", err)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	g := game.New(w, tuning, store, tween.WindowClock{}, *seed)
	g.Run()
}
