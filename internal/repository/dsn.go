package repository

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
)

var ErrInvalidConnectionString = errors.New("invalid connection string")

// PreparePostgresDSN validates a PostgreSQL URI or key=value DSN and, when
// sslRequired is set and no sslmode is given, appends sslmode=require.
func PreparePostgresDSN(connStr string, sslRequired bool) (string, error) {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return "", fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if !sslRequired || hasSSLMode(connStr) {
		return connStr, nil
	}

	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		q := u.Query()
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return connStr + " sslmode=require", nil
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// hasSSLMode reports whether the connection string carries an sslmode key,
// case-insensitively, in either URL or key=value form.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}

	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "sslmode") {
			return true
		}
	}
	return false
}
