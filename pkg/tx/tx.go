package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

// Manager wraps transaction management for services. Every Do runs at read
// committed: the contested claim relies on its conditional UPDATE blocking on
// the winner's row lock and then re-evaluating the WHERE clause against the
// committed row, so the loser matches zero rows instead of aborting with a
// serialization failure. Stricter levels turn that lost race into SQLSTATE
// 40001.
type Manager struct {
	internal *manager.Manager
}

func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
	}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.internal.DoWithSettings(ctx, txSettings(), fn)
}

func txSettings() pgxv5.Settings {
	return pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: pgx.ReadCommitted}),
	)
}
