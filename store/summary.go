package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expense-manager-go-be/models"
)

// Summary is a read-only financial snapshot for one user. TotalExpenses holds
// the absolute value of negative amounts, so TotalBalance = TotalIncome -
// TotalExpenses and matches RecomputeBalance for the same user.
type Summary struct {
	TotalIncome         decimal.Decimal `json:"total_income"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	TotalBalance        decimal.Decimal `json:"total_balance"`
	IncomeTransactions  int64           `json:"income_transactions"`
	ExpenseTransactions int64           `json:"expense_transactions"`
}

// Summarize computes the snapshot in a single aggregate query. Pure read.
func (s *Store) Summarize(userID uuid.UUID) (*Summary, error) {
	var row struct {
		Income       decimal.Decimal
		Expenses     decimal.Decimal
		IncomeCount  int64
		ExpenseCount int64
	}
	err := s.db.Model(&models.Expense{}).
		Select(`COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS expenses,
			COUNT(CASE WHEN amount > 0 THEN 1 END) AS income_count,
			COUNT(CASE WHEN amount < 0 THEN 1 END) AS expense_count`).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, wrapErr(err)
	}

	return &Summary{
		TotalIncome:         row.Income,
		TotalExpenses:       row.Expenses,
		TotalBalance:        row.Income.Sub(row.Expenses),
		IncomeTransactions:  row.IncomeCount,
		ExpenseTransactions: row.ExpenseCount,
	}, nil
}
