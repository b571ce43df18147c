package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/colinmarc/hdfs/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

type sqldb interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLDB struct {
	*sql.DB
}

func NewSQLDB(ctx context.Context, dsn string) (SQLDB, error) {
	const op = "SQLDB"
	log := slog.With("op", op)

	connConfig, _ := pgx.ParseConfig(dsn)
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)
	s := SQLDB{db}
	if err := s.PingContext(ctx); err != nil {
		return SQLDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	log.Info("database is available")
	return s, nil
}

func (s SQLDB) Close() {
	const op = "SQLDB.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.DB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}

type hdfsStorage interface {
	Append(name string) (*hdfs.FileWriter, error)
	Create(name string) (*hdfs.FileWriter, error)
}

type HDFS struct {
	*hdfs.Client
}

func NewHDFS(namenodeAddr string) (HDFS, error) {
	const op = "HDFS"
	log := slog.With("op", op)

	cl, err := hdfs.New(namenodeAddr)
	if err != nil {
		return HDFS{}, fmt.Errorf("%s: namenode is unavailable: %w", op, err)
	}
	log.Info("distributed file storage is available")
	return HDFS{cl}, nil
}

func (h HDFS) Close() {
	const op = "HDFS.Close"
	log := slog.With("op", op)

	log.Info("closing distributed file storage...")

	if err := h.Client.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("distributed file storage is closed")
}
