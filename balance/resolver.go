// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balance

import (
	"context"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/starkbal/starkbal/stark"
	"github.com/starkbal/starkbal/storagedb"
)

var log = log15.New("pkg", "balance")

// Resolver resolves account balances per token from a storage-history
// database. It exclusively owns the database handle; tokens are queried
// strictly one after another while the work around each query runs in
// parallel.
type Resolver struct {
	db       *storagedb.DB
	selector stark.Felt
}

// NewResolver creates a resolver deriving slots with the given
// selector.
func NewResolver(db *storagedb.DB, selector stark.Felt) *Resolver {
	return &Resolver{db, selector}
}

// Resolve builds the account index once, then for each token queries
// the latest storage values and aggregates them into a balance map.
// The first failing query aborts the run, naming the token.
func (r *Resolver) Resolve(ctx context.Context, accounts, tokens []stark.Felt) (ResultSet, error) {
	start := time.Now()
	index := BuildIndex(r.selector, accounts)
	log.Debug("account index built", "accounts", index.Len(), "elapsed", time.Since(start))

	set := make(ResultSet, len(tokens))
	for _, token := range tokens {
		queryStart := time.Now()
		records, err := r.db.LatestValues(ctx, token.Bytes())
		if err != nil {
			return nil, errors.Wrapf(err, "query latest storage values of token %v", token)
		}

		set[token] = Aggregate(records, index)
		log.Debug("token resolved",
			"token", token,
			"records", len(records),
			"balances", len(set[token]),
			"elapsed", time.Since(queryStart),
		)
	}
	return set, nil
}
