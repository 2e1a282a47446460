package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/tbern/chessforge/internal/cli"
	"github.com/tbern/chessforge/internal/config"
	"github.com/tbern/chessforge/internal/engine"
	"github.com/tbern/chessforge/internal/storage"
	"github.com/tbern/chessforge/internal/worker"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := config.FromEnv()

	pool := worker.NewPool(cfg.Workers)
	defer pool.Close()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	opts := cli.Options{
		Difficulty: resolveDifficulty(cfg, store),
		Budget:     cfg.MoveTime,
		Depth:      cfg.Depth,
	}
	cli.New(pool, store, opts, os.Stdin, os.Stdout).Run()
}

// resolveDifficulty prefers the environment, then the stored preference,
// then medium.
func resolveDifficulty(cfg *config.Config, store *storage.Store) engine.Difficulty {
	name := cfg.Difficulty
	if name == "" && store != nil {
		if prefs, err := store.LoadPreferences(); err == nil {
			name = prefs.Difficulty
		}
	}
	if name == "" {
		return engine.Medium
	}
	d, err := engine.ParseDifficulty(name)
	if err != nil {
		log.Printf("ignoring %v", err)
		return engine.Medium
	}
	return d
}

// openStore opens the score log. Persistence failures only disable the
// log; the game itself never depends on it.
func openStore(cfg *config.Config) *storage.Store {
	var (
		store *storage.Store
		err   error
	)
	if cfg.DataDir != "" {
		store, err = storage.Open(cfg.DataDir)
	} else {
		store, err = storage.OpenDefault()
	}
	if err != nil {
		log.Printf("score log disabled: %v", err)
		return nil
	}
	return store
}
