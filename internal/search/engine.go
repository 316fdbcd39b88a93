package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Paintersrp/kf/internal/fuzzy"
	"github.com/Paintersrp/kf/internal/pathutil"
	"github.com/Paintersrp/kf/internal/query"
	"github.com/Paintersrp/kf/internal/rank"
	"github.com/Paintersrp/kf/internal/tag"
)

// exactMatchScore is the base awarded when the exact phrase is contained in
// the candidate, before any fuzzy-term contribution.
const exactMatchScore = 100

// readDir is swappable so tests can inject traversal failures.
var readDir = os.ReadDir

// Engine runs searches over the filesystem, optionally scoped to the
// intersection of tags resolved from the store.
type Engine struct {
	store   *tag.Store
	cfg     Config
	skip    map[string]struct{}
	ignored map[string]struct{}
}

func NewEngine(store *tag.Store, cfg Config) *Engine {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueCap < 1 {
		cfg.QueueCap = 1
	}
	if cfg.ResultBuffer < 1 {
		cfg.ResultBuffer = 1
	}

	skip := make(map[string]struct{}, len(cfg.SkipDirs))
	for _, name := range cfg.SkipDirs {
		skip[strings.ToLower(name)] = struct{}{}
	}

	ignored := make(map[string]struct{}, len(cfg.IgnoredExtensions))
	for _, ext := range cfg.IgnoredExtensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext != "" {
			ignored[ext] = struct{}{}
		}
	}

	return &Engine{store: store, cfg: cfg, skip: skip, ignored: ignored}
}

// workItem is one unit of traversal. Candidate text is the path relative to
// origin, so scoring sees what the user sees. self marks the path itself as a
// candidate; descend lists its children when it is a directory.
type workItem struct {
	path    string
	origin  string
	self    bool
	descend bool
}

// Search is one in-flight run. Results stream until the channel closes;
// Cancel stops traversal within one unit of work; Wait blocks until all
// workers have exited.
type Search struct {
	results chan rank.Result
	queue   chan workItem
	cancel  context.CancelFunc
	done    chan struct{}
	err     error

	constraints query.Constraints
	pred        tag.Predicate

	pending sync.WaitGroup
	scanned atomic.Int64
	matched atomic.Int64
	dropped atomic.Int64

	mu      sync.Mutex
	visited map[string]struct{}
	errs    []PathError
}

// Run resolves the scope and starts the worker pool. The returned Search is
// live; a new call is the way to restart with different inputs.
func (e *Engine) Run(ctx context.Context, c query.Constraints, scope Scope) (*Search, error) {
	var (
		pred  tag.Predicate
		seeds []tag.Seed
		root  string
	)

	if scope.scoped() {
		if e.store == nil {
			return nil, errors.New("search: no tag index configured")
		}
		var err error
		pred, seeds, err = e.store.Resolve(scope.Tags)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
	} else {
		abs, err := pathutil.Absolute(scope.Root)
		if err != nil {
			return nil, fmt.Errorf("search root %s: %w", scope.Root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("search root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("search root %s is not a directory", abs)
		}
		root = abs
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Search{
		results:     make(chan rank.Result, e.cfg.ResultBuffer),
		queue:       make(chan workItem, e.cfg.QueueCap),
		cancel:      cancel,
		done:        make(chan struct{}),
		constraints: c,
		pred:        pred,
		visited:     make(map[string]struct{}),
	}

	if scope.scoped() {
		for _, seed := range seeds {
			s.enqueue(workItem{
				path:    seed.Path,
				origin:  filepath.Dir(seed.Path),
				self:    true,
				descend: seed.Recursive,
			})
		}
	} else {
		s.enqueue(workItem{path: root, origin: root, descend: true})
	}

	g, wctx := errgroup.WithContext(ctx)
	for i := 0; i < e.cfg.Workers; i++ {
		g.Go(func() error {
			for item := range s.queue {
				if wctx.Err() == nil {
					e.process(wctx, s, item)
				}
				s.pending.Done()
			}
			return nil
		})
	}

	go func() {
		s.pending.Wait()
		close(s.queue)
	}()

	go func() {
		err := g.Wait()
		close(s.results)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.err = err
		}
		close(s.done)
	}()

	return s, nil
}

// Results streams scored hits in discovery order. The channel closes when
// traversal finishes or is cancelled.
func (s *Search) Results() <-chan rank.Result {
	return s.results
}

// Cancel stops the search. Already-emitted results remain valid.
func (s *Search) Cancel() {
	s.cancel()
}

// Wait blocks until every worker has exited. A cancelled search waits and
// returns nil.
func (s *Search) Wait() error {
	<-s.done
	return s.err
}

func (s *Search) Stats() Stats {
	s.mu.Lock()
	errs := append([]PathError(nil), s.errs...)
	s.mu.Unlock()

	return Stats{
		Scanned:     s.scanned.Load(),
		Matched:     s.matched.Load(),
		DroppedDirs: s.dropped.Load(),
		Errors:      errs,
	}
}

// enqueue adds a traversal item without ever blocking: when the queue is
// full the item is dropped and counted. Descending items are deduplicated by
// canonical identity so symlink cycles terminate.
func (s *Search) enqueue(item workItem) {
	if item.descend && !s.visit(pathutil.Canonical(item.path)) {
		return
	}

	s.pending.Add(1)
	select {
	case s.queue <- item:
	default:
		s.pending.Done()
		s.dropped.Add(1)
	}
}

func (s *Search) visit(canonical string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.visited[canonical]; seen {
		return false
	}
	s.visited[canonical] = struct{}{}
	return true
}

func (s *Search) recordError(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, PathError{Path: path, Err: err})
}

func (e *Engine) process(ctx context.Context, s *Search, item workItem) {
	info, err := os.Stat(item.path)
	if err != nil {
		// Seeds come from the tag index; a stale entry is not an error.
		if !item.self {
			s.recordError(item.path, err)
		}
		return
	}

	isDir := info.IsDir()
	if item.self {
		e.consider(ctx, s, item.path, item.origin, isDir)
	}
	if !isDir || !item.descend {
		return
	}

	entries, err := readDir(item.path)
	if err != nil {
		s.recordError(item.path, err)
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		child := filepath.Join(item.path, entry.Name())
		childIsDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(child)
			if err != nil {
				continue
			}
			childIsDir = target.IsDir()
		}

		if childIsDir {
			if e.skipDir(entry.Name()) {
				continue
			}
			s.enqueue(workItem{path: child, origin: item.origin, descend: true})
			e.consider(ctx, s, child, item.origin, true)
			continue
		}

		e.consider(ctx, s, child, item.origin, false)
	}
}

// consider runs one candidate through the filter pipeline and emits it when
// it survives: scope predicate, type, extensions, exact phrase, fuzzy terms.
func (e *Engine) consider(ctx context.Context, s *Search, path, origin string, isDir bool) {
	s.scanned.Add(1)

	if s.pred != nil && !s.pred(path) {
		return
	}

	c := s.constraints
	if !c.Allows(isDir) {
		return
	}

	name := filepath.Base(path)
	if !isDir {
		if e.ignoredExt(name) {
			return
		}
		if !c.AllowsExt(name) {
			return
		}
	}

	text := candidateText(origin, path)

	score := 0
	kind := rank.KindFuzzy
	if c.HasPhrase {
		if !c.MatchesPhrase(text) {
			return
		}
		score = exactMatchScore
		kind = rank.KindExact
	}

	if terms := c.FuzzyText(); terms != "" {
		termScore, ok := fuzzy.Score(text, terms)
		if !ok {
			return
		}
		score += termScore
	}

	if kind == rank.KindFuzzy && len(c.Extensions) > 0 {
		kind = rank.KindExtension
	}

	select {
	case s.results <- rank.Result{Path: path, Score: score, Kind: kind, IsDir: isDir}:
		s.matched.Add(1)
	case <-ctx.Done():
	}
}

func (e *Engine) skipDir(name string) bool {
	_, found := e.skip[strings.ToLower(name)]
	return found
}

func (e *Engine) ignoredExt(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	_, found := e.ignored[ext]
	return found
}

func candidateText(origin, path string) string {
	rel, err := filepath.Rel(origin, path)
	if err != nil || rel == "." {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
