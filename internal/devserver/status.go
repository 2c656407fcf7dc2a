package devserver

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// buildStatus tracks the last good document and the last error for display.
type buildStatus struct {
	mu           sync.RWMutex
	html         string
	revision     string
	builtAt      time.Time
	lastError    error
	hasGoodBuild bool // true if at least one successful build exists
}

// snapshot is a consistent copy of buildStatus.
type snapshot struct {
	HTML         string
	Revision     string
	BuiltAt      time.Time
	LastError    error
	HasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

// setSuccess stores html under a fresh revision and returns the revision.
func (bs *buildStatus) setSuccess(html string) string {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.html = html
	bs.revision = uuid.NewString()
	bs.builtAt = time.Now()
	bs.lastError = nil
	bs.hasGoodBuild = true
	return bs.revision
}

func (bs *buildStatus) get() snapshot {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return snapshot{
		HTML:         bs.html,
		Revision:     bs.revision,
		BuiltAt:      bs.builtAt,
		LastError:    bs.lastError,
		HasGoodBuild: bs.hasGoodBuild,
	}
}
