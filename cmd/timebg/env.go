package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/timebg/background-changer/internal/adapter/imagefile"
	"github.com/timebg/background-changer/internal/adapter/jsonfile"
	"github.com/timebg/background-changer/internal/config"
)

// env is what every command needs: settings, the document store and the
// image checker, with logging redirected to the settings log file.
type env struct {
	settings config.Settings
	store    *jsonfile.Store
	assets   *imagefile.Checker
	logFile  *os.File
}

func newEnv(name string) (*env, error) {
	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("get executable path: %w", err)
	}
	settings, err := config.Load(settingsPath, filepath.Dir(exePath))
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		settings = settings.WithDataDir(dataDir)
	}

	e := &env{
		settings: settings,
		store:    jsonfile.New(settings.TimePointsFile, settings.ImagesFile),
		assets:   imagefile.NewChecker(),
	}
	e.openLog()

	log.Printf("=== %s starting ===", name)
	log.Printf("Executable path: %s", exePath)
	log.Printf("Data directory: %s", settings.DataDir)
	log.Printf("Time points config: %s", e.store.TimePointsPath())
	log.Printf("Images config: %s", e.store.ImagesPath())
	return e, nil
}

func (e *env) openLog() {
	path := e.settings.LogFile
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("Warning: cannot create log directory for %s: %v, logging to stderr", path, err)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Warning: cannot open log file %s: %v, logging to stderr", path, err)
		return
	}
	e.logFile = f
	log.SetOutput(f)
}

func (e *env) Close() {
	if e.logFile != nil {
		log.SetOutput(os.Stderr)
		e.logFile.Close()
	}
}
