package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/xaenox/nico-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

var _ FactsStore = (*PostgresStorage)(nil)

// PostgresStorage keeps platform facts in the platform_facts and
// platform_plans tables.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(ctx context.Context, config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	storage, err := newPostgresFromDSN(ctx, config.DSN(), logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", config.Host),
		zap.String("dbname", config.DBName))
	return storage, nil
}

func newPostgresFromDSN(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}
	if err := storage.initializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}
	return storage, nil
}

func (s *PostgresStorage) initializeSchema(ctx context.Context) error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}
	return nil
}

func (s *PostgresStorage) LoadFacts(ctx context.Context) (*models.PlatformFacts, error) {
	query := `
		SELECT about, launch_date, registration_bonus, minimum_deposit, minimum_withdrawal,
		       withdrawal_fee, withdrawals, bind_withdrawal_account_steps,
		       change_account_password_steps, registration_link, official_domain,
		       referral, support, support_handle
		FROM platform_facts
		WHERE id = 1`

	f := &models.PlatformFacts{}
	err := s.db.QueryRowContext(ctx, query).Scan(
		&f.About,
		&f.LaunchDate,
		&f.RegistrationBonus,
		&f.MinimumDeposit,
		&f.MinimumWithdrawal,
		&f.WithdrawalFee,
		&f.Withdrawals,
		pq.Array(&f.BindAccountSteps),
		pq.Array(&f.ChangePasswordSteps),
		&f.RegistrationLink,
		&f.OfficialDomain,
		&f.Referral,
		&f.Support,
		&f.SupportHandle,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoFacts
	}
	if err != nil {
		return nil, fmt.Errorf("error querying platform facts: %w", err)
	}

	plans, err := s.loadPlans(ctx)
	if err != nil {
		return nil, err
	}
	f.Plans = plans

	return f, nil
}

func (s *PostgresStorage) loadPlans(ctx context.Context) ([]models.Plan, error) {
	query := `
		SELECT name, daily_income, duration, price
		FROM platform_plans
		ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.Name, &p.DailyIncome, &p.Duration, &p.Price); err != nil {
			return nil, fmt.Errorf("error scanning plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}

	return plans, nil
}

// SaveFacts replaces the stored facts and plans in one transaction.
func (s *PostgresStorage) SaveFacts(ctx context.Context, f *models.PlatformFacts) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO platform_facts (id, about, launch_date, registration_bonus, minimum_deposit,
			minimum_withdrawal, withdrawal_fee, withdrawals, bind_withdrawal_account_steps,
			change_account_password_steps, registration_link, official_domain, referral,
			support, support_handle)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			about = EXCLUDED.about,
			launch_date = EXCLUDED.launch_date,
			registration_bonus = EXCLUDED.registration_bonus,
			minimum_deposit = EXCLUDED.minimum_deposit,
			minimum_withdrawal = EXCLUDED.minimum_withdrawal,
			withdrawal_fee = EXCLUDED.withdrawal_fee,
			withdrawals = EXCLUDED.withdrawals,
			bind_withdrawal_account_steps = EXCLUDED.bind_withdrawal_account_steps,
			change_account_password_steps = EXCLUDED.change_account_password_steps,
			registration_link = EXCLUDED.registration_link,
			official_domain = EXCLUDED.official_domain,
			referral = EXCLUDED.referral,
			support = EXCLUDED.support,
			support_handle = EXCLUDED.support_handle`

	_, err = tx.ExecContext(ctx, upsert,
		f.About,
		f.LaunchDate,
		f.RegistrationBonus,
		f.MinimumDeposit,
		f.MinimumWithdrawal,
		f.WithdrawalFee,
		f.Withdrawals,
		pq.Array(f.BindAccountSteps),
		pq.Array(f.ChangePasswordSteps),
		f.RegistrationLink,
		f.OfficialDomain,
		f.Referral,
		f.Support,
		f.SupportHandle,
	)
	if err != nil {
		return fmt.Errorf("error saving platform facts: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM platform_plans`); err != nil {
		return fmt.Errorf("error clearing plans: %w", err)
	}
	for i, p := range f.Plans {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO platform_plans (position, name, daily_income, duration, price) VALUES ($1, $2, $3, $4, $5)`,
			i, p.Name, p.DailyIncome, p.Duration, p.Price)
		if err != nil {
			return fmt.Errorf("error saving plan %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing facts: %w", err)
	}

	s.logger.Info("Platform facts saved", zap.Int("plans", len(f.Plans)))
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
