// Package repository defines the MySQL sales ledger and the error values
// it reports.  Higher layers distinguish failure scenarios with errors.Is.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a ledger row for the same booking event
// already exists, for instance when a recorder is retried.
var ErrConflict = errors.New("conflict")

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
