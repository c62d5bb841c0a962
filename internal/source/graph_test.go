package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citanz/dashboard/backend/internal/graph"
	"github.com/citanz/dashboard/backend/internal/loader"
)

func TestGraphSourceLoad(t *testing.T) {
	client := graph.NewMemoryClient().
		SetResult(membersCypher, graph.Result{Records: []graph.Record{
			{"Member ID": "CITANZ-1", "Region": "奥克兰", "City": "Auckland", "Expiry date": "1/1/2030"},
			{"Member ID": "bogus", "Region": nil},
		}}).
		SetResult(paymentsCypher, graph.Result{Records: []graph.Record{
			{"Paid at": "1/3/2024 10:00", "Amount": "50"},
		}})

	ds, err := NewGraphSource(client).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, loader.MemberColumns, ds.Members.Columns)
	assert.Equal(t, loader.PaymentColumns, ds.Payments.Columns)
	require.Len(t, ds.Members.Rows, 2)
	assert.Equal(t, "奥克兰", ds.Members.Rows[0][loader.ColRegion])
	assert.Equal(t, "", ds.Members.Rows[0][loader.ColLastLogin])
	assert.Equal(t, "", ds.Members.Rows[1][loader.ColRegion])
	assert.Equal(t, "50", ds.Payments.Rows[0][loader.ColAmount])

	reads := client.ReadCalls()
	require.Len(t, reads, 2)
	assert.Contains(t, reads[0].Query, "MATCH (n:Member)")
	assert.Contains(t, reads[0].Query, "n.member_id AS `Member ID`")
}

func TestGraphSourceNumericProperties(t *testing.T) {
	client := graph.NewMemoryClient().
		SetResult(membersCypher, graph.Result{}).
		SetResult(paymentsCypher, graph.Result{Records: []graph.Record{
			{"Paid at": "Mar 1, 2024, 10:00 AM", "Amount": float64(1200.5)},
			{"Paid at": "Mar 2, 2024, 10:00 AM", "Amount": int64(60)},
		}})

	ds, err := NewGraphSource(client).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Payments.Rows, 2)
	assert.Equal(t, "1200.5", ds.Payments.Rows[0][loader.ColAmount])
	assert.Equal(t, "60", ds.Payments.Rows[1][loader.ColAmount])

	payments, report, err := loader.New(nil).Payments(ds.Payments)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "1200.5", payments[0].Amount.Decimal.String())
	assert.Equal(t, "60", payments[1].Amount.Decimal.String())
	assert.Empty(t, report.Unparsed)
}

func TestGraphSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewGraphSource(graph.NewMemoryClient().WithError(boom)).Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGraphSourcePing(t *testing.T) {
	client := graph.NewMemoryClient()
	src := NewGraphSource(client)
	require.NoError(t, src.Ping(context.Background()))
	assert.Equal(t, "graph", src.Name())

	boom := errors.New("unreachable")
	client.WithConnectivityError(boom)
	assert.ErrorIs(t, src.Ping(context.Background()), boom)
}

func TestGraphSeederReplace(t *testing.T) {
	client := graph.NewMemoryClient()
	ds := Dataset{
		Members: loader.Table{Columns: loader.MemberColumns, Rows: []loader.Row{
			{loader.ColMemberID: "CITANZ-1", loader.ColRegion: "Auckland"},
			{loader.ColMemberID: "CITANZ-2", loader.ColRegion: ""},
			{loader.ColMemberID: "CITANZ-3", loader.ColCity: "Dunedin"},
		}},
		Payments: loader.Table{Columns: loader.PaymentColumns, Rows: []loader.Row{
			{loader.ColPaidAt: "1/3/2024 10:00", loader.ColAmount: "50"},
		}},
	}

	require.NoError(t, NewGraphSeeder(client, 2).Replace(context.Background(), ds))

	writes := client.WriteCalls()
	require.Len(t, writes, 4)
	assert.Equal(t, clearCypher, writes[0].Query)

	first := writes[1].Params["rows"].([]map[string]any)
	require.Len(t, first, 2)
	assert.Equal(t, map[string]any{"seq": 0, "member_id": "CITANZ-1", "region": "Auckland"}, first[0])
	assert.Equal(t, map[string]any{"seq": 1, "member_id": "CITANZ-2"}, first[1])

	second := writes[2].Params["rows"].([]map[string]any)
	assert.Equal(t, []map[string]any{{"seq": 2, "member_id": "CITANZ-3", "city": "Dunedin"}}, second)

	assert.Contains(t, writes[3].Query, "CREATE (n:Payment)")
}

func TestGraphSeederDefaultBatch(t *testing.T) {
	assert.Equal(t, DefaultSeedBatch, NewGraphSeeder(graph.NewMemoryClient(), 0).batchSize)
}
