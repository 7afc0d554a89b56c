package sqlite

import "database/sql"

// DB exposes the handle for schema assertions in tests.
func (s *Store) DB() *sql.DB { return s.db }
