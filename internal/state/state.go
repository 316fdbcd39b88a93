package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Paintersrp/kf/internal/config"
	"github.com/Paintersrp/kf/internal/constants"
	"github.com/Paintersrp/kf/internal/handler"
	"github.com/Paintersrp/kf/internal/preview"
	"github.com/Paintersrp/kf/internal/recent"
	"github.com/Paintersrp/kf/internal/search"
	"github.com/Paintersrp/kf/internal/tag"
)

// State bundles the long-lived pieces every command shares: the config, the
// tag store with its watcher, the search engine, and the handlers around it.
type State struct {
	Config   *config.Config
	Tags     *tag.Store
	Watcher  *tag.Watcher
	Engine   *search.Engine
	Handler  *handler.FileHandler
	Recents  *recent.List
	Renderer *preview.Renderer
	Home     string
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	store, err := tag.NewStore(config.GetTagsDir(home))
	if err != nil {
		return nil, fmt.Errorf("failed to load tag index: %w", err)
	}
	for _, warning := range store.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	watcher, err := tag.NewWatcher(store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create tag watcher: %w", err)
	}
	watcher.Start()

	engine := search.NewEngine(store, search.Config{
		Workers:           cfg.Workers,
		QueueCap:          cfg.QueueCap,
		ResultBuffer:      cfg.ResultBuffer,
		IgnoredExtensions: cfg.IgnoredExtensions,
		SkipDirs:          cfg.SkipDirs,
	})

	return &State{
		Config:   cfg,
		Tags:     store,
		Watcher:  watcher,
		Engine:   engine,
		Handler:  handler.NewFileHandler(config.GetTrashDir(home)),
		Recents:  recent.NewList(config.GetRecentPath(home), cfg.MaxRecent),
		Renderer: preview.NewRenderer(cfg.FolderColor),
		Home:     home,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases the tag watcher and the store behind it.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Tags != nil {
		if err := s.Tags.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Tags = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
