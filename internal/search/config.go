package search

import "github.com/Paintersrp/kf/internal/tag"

// Config describes engine behavior.
type Config struct {
	// Workers is the traversal pool size. Values below one are raised to one.
	Workers int
	// QueueCap bounds the pending-directory queue. Directories discovered
	// while the queue is full are dropped and counted, never buffered.
	QueueCap int
	// ResultBuffer is the capacity of the result stream. A slow consumer
	// applies backpressure to the workers once it fills.
	ResultBuffer int
	// IgnoredExtensions lists file extensions (without the dot) that are
	// never emitted as results.
	IgnoredExtensions []string
	// SkipDirs contains directory names that are pruned from traversal
	// entirely, matched case-insensitively.
	SkipDirs []string
}

// Scope selects where a search looks: a directory tree, or the intersection
// of one or more tags.
type Scope struct {
	Root string
	Tags []tag.ID
}

// Unscoped walks the whole tree under root.
func Unscoped(root string) Scope {
	return Scope{Root: root}
}

// TagIntersection restricts the search to paths covered by every named tag.
func TagIntersection(names ...tag.ID) Scope {
	return Scope{Tags: names}
}

func (s Scope) scoped() bool {
	return len(s.Tags) > 0
}

// PathError records a traversal failure that was skipped over.
type PathError struct {
	Path string
	Err  error
}

// Stats is a point-in-time snapshot of a search's progress.
type Stats struct {
	// Scanned counts candidates that reached the filter pipeline.
	Scanned int64
	// Matched counts results emitted to the consumer.
	Matched int64
	// DroppedDirs counts directories discarded by the queue soft cap.
	DroppedDirs int64
	// Errors holds per-path traversal failures, in encounter order.
	Errors []PathError
}
