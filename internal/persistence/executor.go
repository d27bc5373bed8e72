package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Statement is a single SQL statement with values bound by name (@name).
type Statement struct {
	SQL  string
	Args pgx.NamedArgs
}

func (s Statement) arguments() []any {
	if len(s.Args) == 0 {
		return nil
	}
	return []any{s.Args}
}

// Options tune how a statement is executed.
type Options struct {
	// SelfCommitting marks statements that manage their own transaction
	// (procedure calls, DO blocks with COMMIT). They run directly on the
	// connection and the executor issues no commit.
	SelfCommitting bool
}

// Result describes the outcome of a write.
type Result struct {
	RowsAffected int64
	CommandTag   string
}

// Querier is the statement surface shared by connections and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Tx is an open transaction on an acquired connection.
type Tx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is one acquired connection.
type Conn interface {
	Querier
	Begin(ctx context.Context) (Tx, error)
	Release()
}

// ConnPool hands out connections.
type ConnPool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// NewConnPool adapts a pgx pool. A nil pool yields ErrNoDatabase on acquire.
func NewConnPool(pool *pgxpool.Pool) ConnPool {
	return pgxConnPool{pool: pool}
}

type pgxConnPool struct {
	pool *pgxpool.Pool
}

func (p pgxConnPool) Acquire(ctx context.Context) (Conn, error) {
	if p.pool == nil {
		return nil, ErrNoDatabase
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return pgxConn{conn: conn}, nil
}

type pgxConn struct {
	conn *pgxpool.Conn
}

func (c pgxConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

func (c pgxConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func (c pgxConn) Begin(ctx context.Context) (Tx, error) {
	return c.conn.Begin(ctx)
}

func (c pgxConn) Release() {
	c.conn.Release()
}

// Executor runs one statement per call on its own connection. It commits
// unless the statement is self-committing and always releases the connection.
// Errors are returned as produced by the driver.
type Executor struct {
	pool   ConnPool
	logger *zap.Logger
}

// NewExecutor builds an executor over the given pool.
func NewExecutor(pool ConnPool, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{pool: pool, logger: logger}
}

// Execute runs a statement that returns no rows.
func (e *Executor) Execute(ctx context.Context, stmt Statement, opts Options) (Result, error) {
	var res Result
	err := e.run(ctx, opts, func(q Querier) error {
		tag, err := q.Exec(ctx, stmt.SQL, stmt.arguments()...)
		if err != nil {
			return err
		}
		res = Result{RowsAffected: tag.RowsAffected(), CommandTag: tag.String()}
		return nil
	})
	return res, err
}

// Collect runs a row-returning statement and maps every row with fn. Rows are
// fully read before the commit.
func Collect[T any](ctx context.Context, e *Executor, stmt Statement, opts Options, fn pgx.RowToFunc[T]) ([]T, error) {
	var out []T
	err := e.run(ctx, opts, func(q Querier) error {
		rows, err := q.Query(ctx, stmt.SQL, stmt.arguments()...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, fn)
		return err
	})
	return out, err
}

func (e *Executor) run(ctx context.Context, opts Options, fn func(Querier) error) error {
	if e == nil || e.pool == nil {
		return ErrNoDatabase
	}

	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer e.release(conn)

	if opts.SelfCommitting {
		return fn(conn)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			e.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return tx.Commit(ctx)
}

// release never lets a failing release surface to the caller.
func (e *Executor) release(conn Conn) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("error releasing connection", zap.Any("panic", r))
		}
	}()
	conn.Release()
}
