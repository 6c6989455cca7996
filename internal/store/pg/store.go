package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wurt83ow/lex-converter/internal/store"
)

// Store реализует интерфейс store.Store и позволяет взаимодействовать с СУБД PostgreSQL.
type Store struct {
	// Поле conn содержит объект соединения с СУБД.
	conn *sql.DB
}

// NewStore возвращает новый экземпляр PostgreSQL хранилища
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Bootstrap подготавливает БД к работе, создавая необходимые таблицы и индексы
func (s Store) Bootstrap(ctx context.Context) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// в случае неуспешного коммита все изменения транзакции будут отменены
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS conversions (
            id uuid PRIMARY KEY,
            user_id varchar(128) NOT NULL,
            amount double precision NOT NULL,
            currency varchar(8) NOT NULL,
            price double precision NOT NULL,
            result double precision NOT NULL,
            created_at timestamp with time zone NOT NULL
        )
    `); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS conversions_user_idx ON conversions (user_id)`); err != nil {
		return err
	}

	return tx.Commit()
}

func (s Store) SaveConversion(ctx context.Context, c store.Conversion) error {
	_, err := s.conn.ExecContext(ctx, `
        INSERT INTO conversions
        (id, user_id, amount, currency, price, result, created_at)
        VALUES
        ($1, $2, $3, $4, $5, $6, $7);
    `, c.ID, c.UserID, c.Amount, c.Currency, c.Price, c.Result, c.CreatedAt)

	if err != nil {
		// повторная запись той же конвертации или нарушение ограничений таблицы
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			err = store.ErrConflict
		}
	}

	return err
}
