package graph

import (
	"context"
	"sync"
)

// MemoryClient is an in-memory Client for tests. Read results are scripted per
// statement, so concurrent callers get deterministic answers regardless of
// call order.
type MemoryClient struct {
	mu           sync.Mutex
	results      map[string]Result
	writes       []ExecutedQuery
	reads        []ExecutedQuery
	err          error
	connectivity error
	closed       bool
}

// ExecutedQuery captures a statement and its parameters.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient returns an empty MemoryClient. Unscripted reads return an
// empty Result.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{results: make(map[string]Result)}
}

// WithError makes every subsequent read and write fail with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return err.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// SetResult scripts the Result returned whenever cypher is read.
func (m *MemoryClient) SetResult(cypher string, res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[cypher] = res
	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}
	m.writes = append(m.writes, ExecutedQuery{Query: cypher, Params: cloneMap(params)})
	return Result{}, nil
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}
	m.reads = append(m.reads, ExecutedQuery{Query: cypher, Params: cloneMap(params)})
	return m.results[cypher], nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// WriteCalls returns a snapshot of executed writes.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.writes...)
}

// ReadCalls returns a snapshot of executed reads.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.reads...)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
