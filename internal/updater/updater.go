package updater

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/caioricciuti/plugin-updater/internal/logger"
	"github.com/caioricciuti/plugin-updater/internal/task"
)

//go:generate mockgen -destination=mocks_test.go -package=updater . Fetcher,Preparer

// Fetcher retrieves the latest published release.
type Fetcher interface {
	FetchLatest(ctx context.Context) (*Release, error)
}

// Preparer receives a release for which an update is available.
type Preparer interface {
	PrepareUpdate(release *Release)
}

// PrepareFunc adapts a plain function to Preparer.
type PrepareFunc func(release *Release)

// PrepareUpdate calls f(release).
func (f PrepareFunc) PrepareUpdate(release *Release) {
	f(release)
}

// Checker compares the local version record with the latest release.
//
// The result starts as ResultLoading and is overwritten by every completed
// check. A check that fails to fetch the release leaves it untouched; the
// failure is available from LastError.
type Checker struct {
	versionFile string
	fetcher     Fetcher
	preparer    Preparer

	mu      sync.RWMutex
	result  Result
	local   *Version
	latest  *Version
	release *Release
	lastErr error
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithVersionFile sets the path of the local version record.
func WithVersionFile(path string) CheckerOption {
	return func(c *Checker) {
		c.versionFile = path
	}
}

// WithFetcher sets the release source.
func WithFetcher(f Fetcher) CheckerOption {
	return func(c *Checker) {
		c.fetcher = f
	}
}

// WithPreparer sets the capability invoked when an update should be prepared.
func WithPreparer(p Preparer) CheckerOption {
	return func(c *Checker) {
		c.preparer = p
	}
}

// NewChecker creates a checker reading version.json from the working
// directory and fetching from the default GitHub endpoint.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		versionFile: VersionFileName,
		result:      ResultLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = NewGitHubClient()
	}
	return c
}

// Start runs CheckAndPrepare in the background and returns without waiting.
// Callers poll Result, or wait on the returned task.
func (c *Checker) Start(ctx context.Context, autoPrepare bool) *task.Task {
	return task.Run(func() error {
		c.CheckAndPrepare(ctx, autoPrepare)
		return nil
	})
}

// CheckAndPrepare loads the local version, fetches the latest release,
// compares both and, when an update is available and autoPrepare is set,
// hands the release to the preparer. Failures are logged and reflected in
// the result; nothing is returned as an error.
func (c *Checker) CheckAndPrepare(ctx context.Context, autoPrepare bool) Result {
	local, err := LoadLocalVersion(c.versionFile)
	if err != nil {
		logger.Error("VersionChecker -> %v", err)
		c.finish(ResultError, nil, nil, nil, err)
		return ResultError
	}
	c.mu.Lock()
	c.local = &local
	c.mu.Unlock()

	// The fetch runs on its own goroutine but is awaited here: nothing
	// below may start before it completes.
	release, err := task.Go(func() (*Release, error) {
		return c.fetcher.FetchLatest(ctx)
	}).Await()
	if err == nil && release == nil {
		err = ErrReleaseUnavailable
	}
	if err != nil && !errors.Is(err, ErrReleaseUnavailable) {
		err = fmt.Errorf("%w: %v", ErrReleaseUnavailable, err)
	}
	if err != nil {
		logger.Error("VersionChecker -> Remote version url not reachable: %v", err)
		c.mu.Lock()
		c.lastErr = err
		result := c.result
		c.mu.Unlock()
		return result
	}

	latest, ok := ParseVersion(release.VersionString())
	if !ok {
		logger.Error("VersionChecker -> String from remote version cant be converted: %q", release.VersionString())
		c.finish(ResultError, &local, nil, release, fmt.Errorf("%w: remote version %q", ErrMalformedVersion, release.VersionString()))
		return ResultError
	}

	result := Compare(local, latest)
	c.finish(result, &local, &latest, release, nil)

	if result == ResultUpToDate && isAhead(local, latest) {
		logger.Warn("VersionChecker -> Local version %s is ahead of latest release %s", local, latest)
	}

	if !result.UpdateAvailable() {
		logger.Debug("VersionChecker -> %s (local %s, latest %s)", result, local, latest)
		return result
	}

	logger.Info("VersionChecker -> Update Available: %s -> %s (%s)", local, latest, result)
	if autoPrepare {
		if c.preparer == nil {
			logger.Warn("VersionChecker -> auto prepare requested but no preparer configured")
		} else {
			c.preparer.PrepareUpdate(release)
		}
	}
	return result
}

func (c *Checker) finish(result Result, local, latest *Version, release *Release, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = result
	c.local = local
	c.latest = latest
	c.release = release
	c.lastErr = err
}

// isAhead reports whether local is a strictly greater semantic version.
func isAhead(local, latest Version) bool {
	return semver.Compare("v"+local.String(), "v"+latest.String()) > 0
}

// Result returns the outcome of the most recent completed check.
func (c *Checker) Result() Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// LocalVersion returns the version loaded by the last check, if any.
func (c *Checker) LocalVersion() (Version, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.local == nil {
		return Version{}, false
	}
	return *c.local, true
}

// LatestVersion returns the parsed remote version of the last check, if any.
func (c *Checker) LatestVersion() (Version, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return Version{}, false
	}
	return *c.latest, true
}

// Release returns the release fetched by the last successful fetch.
func (c *Checker) Release() *Release {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.release
}

// LastError returns the error behind the last failed step, or nil.
func (c *Checker) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// IsFetchFailure reports whether err came from fetching the release.
func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrReleaseUnavailable)
}
