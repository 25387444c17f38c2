// Package blame attributes the lines of the working-tree snapshot to authors.
package blame

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"sync"

	"github.com/huangsam/gitreports/core/identity"
	"github.com/huangsam/gitreports/core/parse"
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures an Attributor.
type Options struct {
	Workers  int
	Excludes []string
	Progress io.Writer // nil disables the progress bar
	Logger   *zap.Logger
}

// Attributor blames every clean tracked file of a repository.
type Attributor struct {
	client   contract.GitClient
	repoPath string
	opts     Options
}

// NewAttributor returns an Attributor for repoPath.
func NewAttributor(client contract.GitClient, repoPath string, opts Options) *Attributor {
	if opts.Workers <= 0 {
		opts.Workers = contract.DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Attributor{client: client, repoPath: repoPath, opts: opts}
}

// BatchSize returns ceil(sqrt(n)), the number of files blamed per batch.
func BatchSize(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Files returns the tracked files that have no working-tree changes and match
// no exclude pattern. A failing status query is logged and excludes nothing.
func (at *Attributor) Files(ctx context.Context) ([]string, error) {
	tracked, err := at.client.ListTrackedFiles(ctx, at.repoPath)
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}

	dirty := map[string]struct{}{}
	status, err := at.client.GetStatus(ctx, at.repoPath)
	if err != nil {
		at.opts.Logger.Warn("status query failed, blaming every tracked file", zap.Error(err))
	} else {
		dirty = lo.Keyify(parse.ParseStatusPaths(status))
	}

	return lo.Filter(tracked, func(path string, _ int) bool {
		if _, changed := dirty[path]; changed {
			return false
		}
		return !contract.ShouldIgnore(path, at.opts.Excludes)
	}), nil
}

// Attribute blames the clean files in sqrt(n)-sized batches and counts the
// lines and distinct files of every author name.
func (at *Attributor) Attribute(ctx context.Context) (*Attribution, error) {
	files, err := at.Files(ctx)
	if err != nil {
		return nil, err
	}

	result := NewAttribution()
	if len(files) == 0 {
		return result, nil
	}

	var bar *progressbar.ProgressBar
	if at.opts.Progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(at.opts.Progress),
			progressbar.OptionSetDescription("Blaming files"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(at.opts.Workers)

	for _, batch := range lo.Chunk(files, BatchSize(len(files))) {
		g.Go(func() error {
			partial := NewAttribution()
			for _, path := range batch {
				if err := gctx.Err(); err != nil {
					return err
				}
				at.blameFile(gctx, path, partial)
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			mu.Lock()
			result.merge(partial)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return result, nil
}

// blameFile adds the lines of one file to partial. Failures contribute nothing.
func (at *Attributor) blameFile(ctx context.Context, path string, partial *Attribution) {
	out, err := at.client.GetBlame(ctx, at.repoPath, path)
	if err != nil {
		at.opts.Logger.Debug("blame failed", zap.String("path", path), zap.Error(err))
		return
	}
	lines := parse.ParseBlamePorcelain(out)
	for _, line := range lines {
		partial.add(line, path)
	}
	if len(lines) > 0 {
		partial.FilesBlamed++
	}
}

// Attribution maps author names to the lines and files they own in the snapshot.
// KeyLOC counts the same lines per literal "Name <email>" key.
type Attribution struct {
	LOC         map[string]int
	Files       map[string]map[string]struct{}
	KeyLOC      map[string]int
	FilesBlamed int
}

// NewAttribution returns an empty Attribution.
func NewAttribution() *Attribution {
	return &Attribution{
		LOC:    make(map[string]int),
		Files:  make(map[string]map[string]struct{}),
		KeyLOC: make(map[string]int),
	}
}

func (a *Attribution) add(line schema.BlameLine, path string) {
	a.LOC[line.Name]++
	a.KeyLOC[parse.AuthorKey(line.Name, line.Email)]++
	files, ok := a.Files[line.Name]
	if !ok {
		files = make(map[string]struct{})
		a.Files[line.Name] = files
	}
	files[path] = struct{}{}
}

func (a *Attribution) merge(other *Attribution) {
	for name, loc := range other.LOC {
		a.LOC[name] += loc
	}
	for key, loc := range other.KeyLOC {
		a.KeyLOC[key] += loc
	}
	for name, files := range other.Files {
		dst, ok := a.Files[name]
		if !ok {
			dst = make(map[string]struct{}, len(files))
			a.Files[name] = dst
		}
		for path := range files {
			dst[path] = struct{}{}
		}
	}
	a.FilesBlamed += other.FilesBlamed
}

// Names returns every attributed name in sorted order.
func (a *Attribution) Names() []string {
	names := lo.Keys(a.LOC)
	slices.Sort(names)
	return names
}

// OwnedBy returns the snapshot lines blamed on a literal "Name <email>" key.
func (a *Attribution) OwnedBy(key string) int {
	if name, email, ok := parse.SplitAuthorKey(key); ok {
		return a.KeyLOC[parse.AuthorKey(name, email)]
	}
	return a.KeyLOC[key]
}

// Assign sets LOC and Files on the roster authors with matching names and
// returns, sorted, the names that match no author. Unknown names are not
// added to the roster.
func (a *Attribution) Assign(roster *identity.Roster) []string {
	var unknown []string
	for _, name := range a.Names() {
		author, ok := roster.Find(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		author.SetSnapshot(a.LOC[name], len(a.Files[name]))
	}
	return unknown
}
