package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"creditpath-backend/internal/domain/borrower"
	"creditpath-backend/internal/domain/errs"
	"creditpath-backend/internal/domain/loan"
	"creditpath-backend/internal/domain/repayment"
	"creditpath-backend/internal/domain/uow"
)

type Observer interface {
	ObserveIngest(table string, inserted, failed int)
}

// CacheInvalidator drops derived aggregates after new rows land.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Usecase struct {
	uow         uow.UnitOfWork
	chunkSize   int
	observer    Observer
	invalidator CacheInvalidator
	log         *slog.Logger
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, chunkSize: DefaultChunkSize, log: slog.Default()}
}

func (u *Usecase) WithChunkSize(n int) *Usecase {
	if n > 0 {
		u.chunkSize = n
	}
	return u
}

func (u *Usecase) WithObserver(o Observer) *Usecase { u.observer = o; return u }

func (u *Usecase) WithInvalidator(c CacheInvalidator) *Usecase { u.invalidator = c; return u }

func (u *Usecase) WithLogger(l *slog.Logger) *Usecase { u.log = l; return u }

// LoadDir loads borrowers, loans and repayments from dir in dependency
// order. Bad rows only cost their chunk; an unreadable file stops the run.
func (u *Usecase) LoadDir(ctx context.Context, dir string) ([]ImportReport, error) {
	steps := []struct {
		file string
		load func(context.Context, io.Reader) (ImportReport, error)
	}{
		{FileBorrowers, u.LoadBorrowers},
		{FileLoans, u.LoadLoans},
		{FileRepayments, u.LoadRepayments},
	}

	reports := make([]ImportReport, 0, len(steps))
	defer u.invalidate(ctx)
	for _, s := range steps {
		rep, err := u.loadFile(ctx, filepath.Join(dir, s.file), s.load)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (u *Usecase) loadFile(ctx context.Context, path string, load func(context.Context, io.Reader) (ImportReport, error)) (ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportReport{}, fmt.Errorf("open %s: %v: %w", path, err, errs.ErrIngestion)
	}
	defer f.Close()
	return load(ctx, f)
}

func (u *Usecase) invalidate(ctx context.Context) {
	if u.invalidator == nil {
		return
	}
	if err := u.invalidator.Invalidate(ctx); err != nil {
		u.log.Warn("ingest: cache invalidation failed", "err", err)
	}
}

func (u *Usecase) LoadBorrowers(ctx context.Context, r io.Reader) (ImportReport, error) {
	return load(ctx, u, "borrowers", r, borrowerColumns,
		func(rec *record) (borrower.Borrower, error) {
			b := borrower.Borrower{
				ID:              rec.u64("id"),
				FullName:        rec.str("full_name"),
				CreditScore:     rec.integer("credit_score"),
				AnnualIncome:    rec.number("annual_income"),
				EmploymentYears: rec.integer("employment_years"),
				HomeOwnership:   borrower.HomeOwnership(rec.str("home_ownership")),
			}
			if rec.err != nil {
				return b, rec.err
			}
			return b, rowError(rec.line, b.Validate())
		},
		func(ctx context.Context, repos uow.Repos, chunk []borrower.Borrower) error {
			return repos.Borrowers.CreateBatch(ctx, chunk)
		})
}

func (u *Usecase) LoadLoans(ctx context.Context, r io.Reader) (ImportReport, error) {
	return load(ctx, u, "loans", r, loanColumns,
		func(rec *record) (loan.Loan, error) {
			l := loan.Loan{
				ID:           rec.u64("id"),
				BorrowerID:   rec.u64("borrower_id"),
				Amount:       rec.number("amount"),
				TermMonths:   rec.integer("term_months"),
				InterestRate: rec.number("interest_rate"),
				Grade:        rec.str("grade"),
				IssueDate:    rec.date("issue_date"),
				Status:       loan.Status(rec.str("loan_status")),
				Installment:  rec.number("installment"),
			}
			if rec.err != nil {
				return l, rec.err
			}
			return l, rowError(rec.line, l.Validate())
		},
		func(ctx context.Context, repos uow.Repos, chunk []loan.Loan) error {
			ids := make([]uint64, len(chunk))
			for i, l := range chunk {
				ids[i] = l.BorrowerID
			}
			known, err := repos.Borrowers.ExistingIDs(ctx, ids)
			if err != nil {
				return err
			}
			for _, l := range chunk {
				if _, ok := known[l.BorrowerID]; !ok {
					return fmt.Errorf("loan %d references unknown borrower %d: %w", l.ID, l.BorrowerID, errs.ErrIngestion)
				}
			}
			return repos.Loans.CreateBatch(ctx, chunk)
		})
}

func (u *Usecase) LoadRepayments(ctx context.Context, r io.Reader) (ImportReport, error) {
	return load(ctx, u, "repayments", r, repaymentColumns,
		func(rec *record) (repayment.Repayment, error) {
			p := repayment.Repayment{
				ID:            rec.u64("id"),
				LoanID:        rec.u64("loan_id"),
				PaymentDate:   rec.date("payment_date"),
				PaymentAmount: rec.number("payment_amount"),
			}
			if rec.err != nil {
				return p, rec.err
			}
			return p, rowError(rec.line, p.Validate())
		},
		func(ctx context.Context, repos uow.Repos, chunk []repayment.Repayment) error {
			ids := make([]uint64, len(chunk))
			for i, p := range chunk {
				ids[i] = p.LoanID
			}
			known, err := repos.Loans.ExistingIDs(ctx, ids)
			if err != nil {
				return err
			}
			for _, p := range chunk {
				if _, ok := known[p.LoanID]; !ok {
					return fmt.Errorf("repayment %d references unknown loan %d: %w", p.ID, p.LoanID, errs.ErrIngestion)
				}
			}
			return repos.Repayments.CreateBatch(ctx, chunk)
		})
}

func rowError(line int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("line %d: %w: %w", line, errs.ErrIngestion, err)
}

// load streams r in chunks of u.chunkSize rows. Each chunk is parsed and then
// inserted in its own transaction; a bad row or a failed insert rolls back
// that chunk only.
func load[T any](
	ctx context.Context,
	u *Usecase,
	table string,
	r io.Reader,
	required []string,
	parse func(*record) (T, error),
	insert func(context.Context, uow.Repos, []T) error,
) (ImportReport, error) {
	rep := ImportReport{Table: table}
	log := u.log.With("table", table)

	cr := csv.NewReader(r)
	cols, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return rep, fmt.Errorf("%s: empty file: %w", table, errs.ErrIngestion)
	}
	if err != nil {
		return rep, fmt.Errorf("%s: read header: %v: %w", table, err, errs.ErrIngestion)
	}
	h, err := newHeader(cols, required)
	if err != nil {
		return rep, fmt.Errorf("%s: %w", table, err)
	}

	chunk := make([]T, 0, u.chunkSize)
	var chunkErr error
	chunkNo, line := 0, 1

	flush := func() error {
		if len(chunk) == 0 && chunkErr == nil {
			return nil
		}
		chunkNo++
		err := chunkErr
		if err == nil {
			err = u.uow.WithinTx(ctx, func(repos uow.Repos) error { return insert(ctx, repos, chunk) })
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			rep.ChunksFailed++
			rep.addError(fmt.Sprintf("chunk %d: %v", chunkNo, err))
			log.Warn("ingest: chunk rolled back", "chunk", chunkNo, "rows", len(chunk), "err", err)
		} else {
			rep.RowsInserted += len(chunk)
		}
		chunk = chunk[:0]
		chunkErr = nil
		return nil
	}

	rowsInChunk := 0
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		rep.RowsRead++
		rowsInChunk++
		if err != nil {
			if chunkErr == nil {
				chunkErr = fmt.Errorf("line %d: %v: %w", line, err, errs.ErrIngestion)
			}
		} else {
			rec := &record{h: h, cols: cells, line: line}
			v, perr := parse(rec)
			if perr != nil {
				if chunkErr == nil {
					chunkErr = perr
				}
			} else {
				chunk = append(chunk, v)
			}
		}
		if rowsInChunk == u.chunkSize {
			if err := flush(); err != nil {
				return rep, err
			}
			rowsInChunk = 0
		}
	}
	if rowsInChunk > 0 {
		if err := flush(); err != nil {
			return rep, err
		}
	}

	if u.observer != nil {
		u.observer.ObserveIngest(table, rep.RowsInserted, rep.RowsRead-rep.RowsInserted)
	}
	log.Info("ingest: loaded", "read", rep.RowsRead, "inserted", rep.RowsInserted, "chunks_failed", rep.ChunksFailed)
	return rep, nil
}
