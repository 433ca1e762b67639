// Package executor applies generated DDL to a live PostgreSQL database.
package executor

import (
	"fmt"

	"github.com/schemaforge/xsd2erd/internal/database"
	"github.com/schemaforge/xsd2erd/internal/relational"
	"github.com/schemaforge/xsd2erd/pkg/logger"
	"github.com/schemaforge/xsd2erd/pkg/progress"
)

type Executor struct {
	conn *database.Connection
	log  *logger.Logger
}

func New(conn *database.Connection, log *logger.Logger) *Executor {
	return &Executor{conn: conn, log: log}
}

// Apply executes the run's statements inside one transaction: drops first,
// then creates in dependency order, then the deferred constraints. Any
// failure rolls the whole run back.
func (e *Executor) Apply(result *relational.Result) error {
	statements := make([]string, 0,
		len(result.DropStatements)+len(result.CreateStatements)+len(result.ConstraintStatements))
	statements = append(statements, result.DropStatements...)
	statements = append(statements, result.CreateStatements...)
	statements = append(statements, result.ConstraintStatements...)

	tx, err := e.conn.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	bar := progress.NewBar(int64(len(statements)), "Applying schema")
	for _, stmt := range statements {
		e.log.Debugf("executing: %s", stmt)
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
		bar.Increment()
	}
	bar.Finish()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.log.Infof("applied %d statements to %s", len(statements), e.conn.GetDatabaseName())
	return nil
}
