package features

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"creditpath-backend/internal/domain/borrower"
	"creditpath-backend/internal/domain/errs"
	featuresDomain "creditpath-backend/internal/domain/features"
	"creditpath-backend/internal/domain/repayment"
	"creditpath-backend/internal/domain/uow"

	"github.com/google/uuid"
)

type RebuildObserver interface {
	ObserveRebuild(d time.Duration, rows int)
}

type Usecase struct {
	uow      uow.UnitOfWork
	now      func() time.Time
	observer RebuildObserver
	log      *slog.Logger
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: time.Now, log: slog.Default()}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase { u.now = now; return u }

func (u *Usecase) WithObserver(o RebuildObserver) *Usecase { u.observer = o; return u }

func (u *Usecase) WithLogger(l *slog.Logger) *Usecase { u.log = l; return u }

// Rebuild recomputes every loan's features and swaps them in atomically:
// reads, clear and insert share one transaction, so a failure at any point
// leaves the previous table untouched. When exportPath is non-empty the
// training dataset is written after the commit.
func (u *Usecase) Rebuild(ctx context.Context, exportPath string) (*RebuildResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	now := u.now()
	log := u.log.With("run_id", runID)

	var training []TrainingRow
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := computeAll(ctx, r, now)
		if err != nil {
			return err
		}
		log.Info("features: computed", "loans", len(rows))

		if err := r.Features.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear loan_features: %w", err)
		}
		feats := make([]featuresDomain.LoanFeatures, len(rows))
		for i := range rows {
			feats[i] = rows[i].Features
		}
		if err := r.Features.CreateBatch(ctx, feats); err != nil {
			return fmt.Errorf("insert loan_features: %w", err)
		}
		training = rows
		return nil
	})
	if err != nil {
		log.Error("features: rebuild rolled back", "err", err)
		return nil, err
	}

	res := &RebuildResult{
		RunID:    runID,
		Loans:    len(training),
		Features: len(training),
	}
	if exportPath != "" {
		if err := WriteTrainingCSV(exportPath, training); err != nil {
			return nil, fmt.Errorf("export training data: %w", err)
		}
		res.ExportPath = exportPath
	}
	res.Duration = time.Since(start)
	if u.observer != nil {
		u.observer.ObserveRebuild(res.Duration, res.Features)
	}
	log.Info("features: rebuild committed", "rows", res.Features, "export", res.ExportPath, "took", res.Duration)
	return res, nil
}

func computeAll(ctx context.Context, r uow.Repos, now time.Time) ([]TrainingRow, error) {
	loans, err := r.Loans.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	borrowers, err := r.Borrowers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load borrowers: %w", err)
	}
	repayments, err := r.Repayments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load repayments: %w", err)
	}

	byID := make(map[uint64]borrower.Borrower, len(borrowers))
	for _, b := range borrowers {
		byID[b.ID] = b
	}
	byLoan := make(map[uint64][]repayment.Repayment, len(loans))
	for _, p := range repayments {
		byLoan[p.LoanID] = append(byLoan[p.LoanID], p)
	}

	out := make([]TrainingRow, 0, len(loans))
	for _, l := range loans {
		b, ok := byID[l.BorrowerID]
		if !ok {
			return nil, fmt.Errorf("loan %d references missing borrower %d: %w", l.ID, l.BorrowerID, errs.ErrValidation)
		}
		out = append(out, TrainingRow{
			Loan:     l,
			Borrower: b,
			Features: Compute(l, byLoan[l.ID], &b, now),
		})
	}
	return out, nil
}
