// Package testutil contains helper builders and utilities used across tests
// to reduce boilerplate when declaring signatures and observing linker
// calls. These helpers are not intended for production usage.
package testutil
