package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db      database.Querier
	metrics *metrics.Metrics
}

func NewSettingsRepository(db database.Querier, m *metrics.Metrics) payroll.SettingsRepository {
	return &settingsRepository{db: db, metrics: m}
}

// GetRates implements payroll.SettingsRepository. NULL columns come back as absent rates.
func (r *settingsRepository) GetRates(ctx context.Context) (payroll.Rates, error) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveQuery("get_payroll_settings", time.Since(start).Seconds())
	}()
	q := getQuerier(ctx, r.db)

	query := `
		SELECT employment_insurance_rate, income_tax_rate, overtime_pay_per_minute
		FROM payroll_settings
		WHERE id = 1
	`

	var rates payroll.Rates
	err := q.QueryRow(ctx, query).Scan(&rates.EmploymentInsurance, &rates.IncomeTax, &rates.OvertimePerMinute)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Rates{}, payroll.ErrSettingsNotFound
		}
		return payroll.Rates{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return rates, nil
}
