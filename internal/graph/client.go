// Package graph wraps the graph database that can hold the member and payment
// exports as (:Member) and (:Payment) nodes.
package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Client is the contract the record source and seeder need from a graph
// database. Implementations run each statement in its own managed transaction.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result holds the records returned by one statement.
type Result struct {
	Records []Record
}

// Record maps a RETURN alias to its value.
type Record map[string]any

// String returns the value of key as text. Numbers and booleans are
// formatted; missing and null values are "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
