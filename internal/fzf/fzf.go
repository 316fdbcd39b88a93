package fzf

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Paintersrp/kf/internal/cache"
	"github.com/Paintersrp/kf/internal/preview"
	"github.com/Paintersrp/kf/internal/rank"
	"github.com/Paintersrp/kf/internal/search"
	"github.com/ktr0731/go-fuzzyfinder"
)

const previewCacheSize = 64

// FuzzyFinder runs a one-shot search and opens an interactive picker over
// the matches, with a rendered preview of the highlighted path.
type FuzzyFinder struct {
	engine   *search.Engine
	renderer *preview.Renderer
	previews *cache.PreviewCache
	Header   string
	results  []rank.Result
}

func NewFuzzyFinder(engine *search.Engine, renderer *preview.Renderer, header string) *FuzzyFinder {
	if renderer == nil {
		renderer = preview.NewRenderer("")
	}
	return &FuzzyFinder{
		engine:   engine,
		renderer: renderer,
		previews: cache.New(previewCacheSize),
		Header:   header,
	}
}

// Run searches once and returns the path the user picked.
func (f *FuzzyFinder) Run(ctx context.Context, raw string, scope search.Scope, limit int) (string, error) {
	results, _, err := f.engine.Collect(ctx, raw, scope, limit)
	if err != nil {
		return "", fmt.Errorf("error running search: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no matches found")
	}

	f.results = results

	idx, err := f.pick()
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", fmt.Errorf("no file selected")
		}
		return "", err
	}
	return f.results[idx].Path, nil
}

func (f *FuzzyFinder) pick() (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	return fuzzyfinder.Find(f.results, func(i int) string {
		r := f.results[i]
		if r.IsDir {
			return r.Path + string(os.PathSeparator)
		}
		return r.Path
	}, options...)
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	path := f.results[i].Path
	info, err := os.Stat(path)
	if err != nil {
		return f.renderer.Render(path, w)
	}

	if rendered, hit := f.previews.Get(path, w, info.ModTime()); hit {
		return rendered
	}
	rendered := f.renderer.Render(path, w)
	f.previews.Put(path, w, info.ModTime(), rendered)
	return rendered
}
