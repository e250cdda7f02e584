package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"centavo/internal/domain/transaction"
)

// BalanceAuditJob recomputes the balances of one user's accounts and
// reports (optionally repairs) drift.
type BalanceAuditJob struct {
	userID int64
	svc    *transaction.Service
	repair bool
}

// NewBalanceAuditJob creates a balance audit job for a user.
func NewBalanceAuditJob(userID int64, svc *transaction.Service, repair bool) *BalanceAuditJob {
	return &BalanceAuditJob{
		userID: userID,
		svc:    svc,
		repair: repair,
	}
}

// Execute runs the audit across all of the user's accounts.
func (j *BalanceAuditJob) Execute(ctx context.Context) error {
	results, err := j.svc.AuditUser(ctx, j.userID, j.repair)
	if err != nil {
		log.Printf("Balance audit failed for user %d: %v", j.userID, err)
		return fmt.Errorf("audit failed: %w", err)
	}

	drifted := 0
	repaired := 0
	for _, r := range results {
		if r.Consistent() {
			continue
		}
		drifted++
		if r.Repaired {
			repaired++
		}
		log.Printf("Balance audit: account %d stored=%.2f expected=%.2f drift=%.6f repaired=%t",
			r.AccountID, r.Stored, r.Expected, r.Drift, r.Repaired)
	}

	if drifted > 0 && !j.repair {
		return fmt.Errorf("audit found %d drifted accounts for user %d", drifted, j.userID)
	}

	log.Printf("Balance audit for user %d completed: Accounts=%d, Drifted=%d, Repaired=%d",
		j.userID, len(results), drifted, repaired)

	return nil
}

// UserID returns the user ID associated with this job.
func (j *BalanceAuditJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

// Description returns a human-readable description of the job.
func (j *BalanceAuditJob) Description() string {
	return fmt.Sprintf("Balance audit for user %d", j.userID)
}
