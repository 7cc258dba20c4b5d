package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Docuport-api/internal/application/ingest"
	"github.com/jhoicas/Docuport-api/internal/domain/repository"
)

var _ ingest.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de registro de
// documentos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	files repository.DocumentFileRepository,
	invoices repository.InvoiceRepository,
	notes repository.CreditNoteRepository,
	statements repository.StatementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	files := NewDocumentFileRepository(tx)
	invoices := NewInvoiceRepository(tx)
	notes := NewCreditNoteRepository(tx)
	statements := NewStatementRepository(tx)

	if err := fn(files, invoices, notes, statements); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
