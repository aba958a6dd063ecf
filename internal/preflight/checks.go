package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"plexmissing/internal/services"
	"plexmissing/internal/services/plex"
)

const checkTimeout = 15 * time.Second

// LibraryLister is the Plex call used to prove connectivity and token validity.
type LibraryLister interface {
	Libraries(ctx context.Context) ([]plex.Library, error)
}

// Pinger is implemented by the TMDB client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckPlex verifies the server answers and accepts the token.
func CheckPlex(ctx context.Context, client LibraryLister) Result {
	const name = "Plex"
	if client == nil {
		return Result{Name: name, Detail: "not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	libraries, err := client.Libraries(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	movies := 0
	for _, lib := range libraries {
		if lib.IsMovie() {
			movies++
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable, %d movie librar%s", movies, plural(movies, "y", "ies"))}
}

// CheckTMDB verifies the API answers and accepts the key.
func CheckTMDB(ctx context.Context, client Pinger) Result {
	const name = "TMDB"
	if client == nil {
		return Result{Name: name, Detail: "not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := client.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API key accepted"}
}

// CheckOutputDirectory verifies reports can be written to path. A missing
// directory passes when its nearest existing parent is writable, since the
// report writer creates it on demand.
func CheckOutputDirectory(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
		}
		parent := nearestExisting(filepath.Dir(path))
		if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func nearestExisting(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out (service unreachable)"
	}
	if errors.Is(err, services.ErrConfiguration) {
		return "credentials rejected: " + err.Error()
	}
	return err.Error()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
