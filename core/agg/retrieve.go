package agg

import (
	"context"
	"slices"
	"strings"

	"github.com/huangsam/gitreports/core/identity"
	"github.com/huangsam/gitreports/core/parse"
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RetrieveHistory runs one history query per (author, email) pair with at most
// workers queries in flight, and accumulates the totals onto each author.
// A failing query is logged and contributes nothing. Only context
// cancellation is returned as an error. A nil logger discards warnings.
func RetrieveHistory(ctx context.Context, client contract.GitClient, repoPath string, roster *identity.Roster, workers int, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for _, author := range roster.Authors() {
		for _, email := range author.Emails() {
			g.Go(func() error {
				out, err := client.GetAuthorNumstat(gctx, repoPath, email)
				if err != nil {
					if ctxErr := gctx.Err(); ctxErr != nil {
						return ctxErr
					}
					logger.Warn("history query failed",
						zap.String("author", author.Name()),
						zap.String("email", email),
						zap.Error(err))
					return nil
				}
				added, deleted := SumNumstat(out)
				author.AddHistory(added, deleted)
				return nil
			})
		}
	}

	return g.Wait()
}

// RetrieveHistorySinglePass reads the whole non-merge log once and routes
// each raw total to the author owning its email. Totals whose email matches
// no author fall back to a match on the display name; anything else is
// returned as unrouted.
func RetrieveHistorySinglePass(ctx context.Context, client contract.GitClient, repoPath string, roster *identity.Roster) ([]schema.RawAuthorTotals, error) {
	out, err := client.GetNonMergeLog(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	return RouteTotals(AggregateLog(out), roster), nil
}

// RouteTotals adds raw added/deleted totals to the matching roster authors
// and returns the totals that matched nobody, sorted by key.
func RouteTotals(totals map[string]*schema.RawAuthorTotals, roster *identity.Roster) []schema.RawAuthorTotals {
	var unrouted []schema.RawAuthorTotals
	for _, total := range totals {
		author, ok := roster.FindByEmail(total.Email)
		if !ok {
			author, ok = findByKeyName(roster, total.Key)
		}
		if !ok {
			unrouted = append(unrouted, *total)
			continue
		}
		author.AddHistory(total.Added, total.Deleted)
	}
	slices.SortFunc(unrouted, func(a, b schema.RawAuthorTotals) int {
		return strings.Compare(a.Key, b.Key)
	})
	return unrouted
}

func findByKeyName(roster *identity.Roster, key string) (*identity.Author, bool) {
	name, _, ok := parse.SplitAuthorKey(key)
	if !ok {
		return nil, false
	}
	return roster.Find(name)
}
