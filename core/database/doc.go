// Package database provides the MySQL connection layer for the registry.
//
// It wraps GORM connection setup with sane pool defaults, DSN construction
// (including URL encoding of credentials and explicit I/O timeouts), and an
// initial ping so a misconfigured database is reported at startup rather
// than on the first query.
package database
