package transaction

import (
	"context"
	"math"
)

// driftTolerance absorbs float64 rounding from repeated balance updates.
const driftTolerance = 1e-6

// AuditResult reports the outcome of recomputing one account's balance
// from its transactions.
type AuditResult struct {
	AccountID int64   `json:"account_id"`
	Stored    float64 `json:"stored"`
	Expected  float64 `json:"expected"`
	Drift     float64 `json:"drift"`
	Repaired  bool    `json:"repaired"`
}

// Consistent reports whether the stored balance matches the recomputed one.
func (r AuditResult) Consistent() bool {
	return math.Abs(r.Drift) <= driftTolerance
}

// AuditAccount recomputes initial_balance + sum of signed amounts for one
// account and compares it with the stored balance. When repair is set and
// the balances disagree, the stored balance is overwritten with the
// recomputed value.
func (s *Service) AuditAccount(ctx context.Context, accountID int64, repair bool) (*AuditResult, error) {
	var result *AuditResult

	err := s.db.RunInTx(ctx, func(ctx context.Context) error {
		acct, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		sum, err := s.txns.SumSigned(ctx, accountID)
		if err != nil {
			return err
		}

		expected := acct.InitialBalance + sum
		result = &AuditResult{
			AccountID: acct.ID,
			Stored:    acct.Balance,
			Expected:  expected,
			Drift:     acct.Balance - expected,
		}

		if repair && !result.Consistent() {
			if err := s.accounts.SetBalance(ctx, acct.ID, expected); err != nil {
				return err
			}
			result.Repaired = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AuditUser audits every account owned by userID.
func (s *Service) AuditUser(ctx context.Context, userID int64, repair bool) ([]*AuditResult, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]*AuditResult, 0, len(accounts))
	for _, acct := range accounts {
		result, err := s.AuditAccount(ctx, acct.ID, repair)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}
