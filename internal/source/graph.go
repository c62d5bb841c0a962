package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/citanz/dashboard/backend/internal/graph"
	"github.com/citanz/dashboard/backend/internal/loader"
)

// property maps an export column to the node property holding its raw text.
type property struct {
	column string
	key    string
}

var memberProperties = []property{
	{loader.ColMemberID, "member_id"},
	{loader.ColRegion, "region"},
	{loader.ColCity, "city"},
	{loader.ColExpiry, "expiry_date"},
	{loader.ColLastPayment, "last_payment_date"},
	{loader.ColSignedUp, "signed_up"},
	{loader.ColLastLogin, "last_logged_in"},
}

var paymentProperties = []property{
	{loader.ColPaidAt, "paid_at"},
	{loader.ColAmount, "amount"},
}

const (
	labelMember  = "Member"
	labelPayment = "Payment"
	seqKey       = "seq"
)

var (
	membersCypher  = returnCypher(labelMember, memberProperties)
	paymentsCypher = returnCypher(labelPayment, paymentProperties)
)

const clearCypher = `
MATCH (n)
WHERE n:Member OR n:Payment
DETACH DELETE n`

const pingCypher = `RETURN 1 AS ok`

// returnCypher selects every node of label, aliasing each property to its
// export column, in insertion order.
func returnCypher(label string, props []property) string {
	fields := make([]string, len(props))
	for i, p := range props {
		fields[i] = fmt.Sprintf("n.%s AS `%s`", p.key, p.column)
	}
	return fmt.Sprintf("MATCH (n:%s)\nRETURN %s\nORDER BY n.%s", label, strings.Join(fields, ", "), seqKey)
}

func createCypher(label string) string {
	return fmt.Sprintf("UNWIND $rows AS row\nCREATE (n:%s)\nSET n = row", label)
}

func columns(props []property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.column
	}
	return out
}

// GraphSource reads the exports stored as (:Member) and (:Payment) nodes whose
// properties hold the raw cell text.
type GraphSource struct {
	client graph.Client
}

// NewGraphSource returns a GraphSource reading through client.
func NewGraphSource(client graph.Client) *GraphSource {
	return &GraphSource{client: client}
}

func (s *GraphSource) Name() string { return "graph" }

// Load runs one read query per label.
func (s *GraphSource) Load(ctx context.Context) (Dataset, error) {
	members, err := s.fetch(ctx, membersCypher, memberProperties)
	if err != nil {
		return Dataset{}, fmt.Errorf("fetch members: %w", err)
	}
	payments, err := s.fetch(ctx, paymentsCypher, paymentProperties)
	if err != nil {
		return Dataset{}, fmt.Errorf("fetch payments: %w", err)
	}
	return Dataset{Members: members, Payments: payments}, nil
}

// Ping verifies connectivity and runs a trivial read.
func (s *GraphSource) Ping(ctx context.Context) error {
	if err := s.client.VerifyConnectivity(ctx); err != nil {
		return err
	}
	_, err := s.client.ExecuteRead(ctx, pingCypher, nil)
	return err
}

func (s *GraphSource) fetch(ctx context.Context, cypher string, props []property) (loader.Table, error) {
	res, err := s.client.ExecuteRead(ctx, cypher, nil)
	if err != nil {
		return loader.Table{}, err
	}

	table := loader.Table{Columns: columns(props), Rows: make([]loader.Row, 0, len(res.Records))}
	for _, rec := range res.Records {
		row := make(loader.Row, len(props))
		for _, p := range props {
			row[p.column] = rec.String(p.column)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// DefaultSeedBatch is the number of rows sent per write statement.
const DefaultSeedBatch = 500

// GraphSeeder replaces the nodes GraphSource reads with the contents of a
// Dataset.
type GraphSeeder struct {
	client    graph.Client
	batchSize int
}

// NewGraphSeeder returns a seeder writing batchSize rows per statement; values
// below one select DefaultSeedBatch.
func NewGraphSeeder(client graph.Client, batchSize int) *GraphSeeder {
	if batchSize < 1 {
		batchSize = DefaultSeedBatch
	}
	return &GraphSeeder{client: client, batchSize: batchSize}
}

// Replace deletes existing member and payment nodes and writes ds. Rows keep
// their order through a sequence property.
func (s *GraphSeeder) Replace(ctx context.Context, ds Dataset) error {
	if _, err := s.client.ExecuteWrite(ctx, clearCypher, nil); err != nil {
		return fmt.Errorf("clear graph: %w", err)
	}
	if err := s.write(ctx, labelMember, ds.Members, memberProperties); err != nil {
		return fmt.Errorf("seed members: %w", err)
	}
	if err := s.write(ctx, labelPayment, ds.Payments, paymentProperties); err != nil {
		return fmt.Errorf("seed payments: %w", err)
	}
	return nil
}

func (s *GraphSeeder) write(ctx context.Context, label string, table loader.Table, props []property) error {
	cypher := createCypher(label)
	for start := 0; start < len(table.Rows); start += s.batchSize {
		end := start + s.batchSize
		if end > len(table.Rows) {
			end = len(table.Rows)
		}

		rows := make([]map[string]any, 0, end-start)
		for i, row := range table.Rows[start:end] {
			node := map[string]any{seqKey: start + i}
			for _, p := range props {
				if v, ok := row[p.column]; ok && v != "" {
					node[p.key] = v
				}
			}
			rows = append(rows, node)
		}

		if _, err := s.client.ExecuteWrite(ctx, cypher, map[string]any{"rows": rows}); err != nil {
			return fmt.Errorf("rows %d-%d: %w", start, end-1, err)
		}
	}
	return nil
}
