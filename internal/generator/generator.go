// Package generator synthesises member and payment exports with the spelling
// variety and noise of real membership data.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/citanz/dashboard/backend/internal/loader"
	"github.com/citanz/dashboard/backend/internal/source"
)

// place is a region with the spellings members type for it and the cities
// they put next to it.
type place struct {
	spellings []string
	cities    []string
	weight    int
}

var places = []place{
	{[]string{"Auckland", "auckland", "奥克兰", "AUCKLAND ", " Auckland"}, []string{"Auckland", "North Shore", "Manukau", "Auckland CBD", "奥克兰"}, 40},
	{[]string{"Wellington", "wellington", "惠灵顿"}, []string{"Wellington", "Lower Hutt", "Porirua"}, 15},
	{[]string{"Canterbury", "坎特伯雷", "canterbury"}, []string{"Christchurch", "基督城", "Timaru"}, 14},
	{[]string{"Waikato", "怀卡托"}, []string{"Hamilton", "Hamilton East", "Taupo"}, 8},
	{[]string{"Bay of Plenty", "丰盛湾", "bay of plenty"}, []string{"Tauranga", "Rotorua"}, 6},
	{[]string{"Otago", "奥塔哥"}, []string{"Dunedin", "Queenstown", "皇后镇"}, 6},
	{[]string{"Manawatū-Whanganui", "Manawatu-Whanganui"}, []string{"Palmerston North", "Whanganui"}, 3},
	{[]string{"Hawke's Bay", "Hawkes Bay"}, []string{"Napier", "Hastings"}, 2},
	{[]string{"Southland"}, []string{"Invercargill"}, 2},
	{[]string{"Nelson", "纳尔逊"}, []string{"Nelson"}, 1},
	{[]string{""}, []string{""}, 3},
}

var fees = []string{"60", "$60.00", "30", "$30", "48", "120.00", "$1,200.00", " 60 ", "¥300"}

var malformedDates = []string{"31/02/2024", "n/a", "2024-13-45", "TBC"}

var malformedAmounts = []string{"free", "sixty", "-"}

// Generator produces synthetic exports.
type Generator struct {
	cfg         Config
	rand        *rand.Rand
	now         time.Time
	totalWeight int
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumMembers <= 0 {
		cfg.NumMembers = def.NumMembers
	}
	if cfg.NumPayments < 0 {
		cfg.NumPayments = def.NumPayments
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}

	total := 0
	for _, p := range places {
		total += p.weight
	}

	return &Generator{
		cfg:         cfg,
		rand:        rand.New(rand.NewSource(cfg.Seed)),
		now:         now.UTC().Truncate(time.Minute),
		totalWeight: total,
	}
}

// Generate synthesises both tables. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (source.Dataset, error) {
	members := loader.Table{Columns: append([]string(nil), loader.MemberColumns...)}
	for i := 0; i < g.cfg.NumMembers; i++ {
		if err := ctx.Err(); err != nil {
			return source.Dataset{}, err
		}
		members.Rows = append(members.Rows, g.member(i))
	}

	payments := loader.Table{Columns: append([]string(nil), loader.PaymentColumns...)}
	for i := 0; i < g.cfg.NumPayments; i++ {
		if err := ctx.Err(); err != nil {
			return source.Dataset{}, err
		}
		payments.Rows = append(payments.Rows, g.payment())
	}

	return source.Dataset{Members: members, Payments: payments}, nil
}

func (g *Generator) member(i int) loader.Row {
	id := fmt.Sprintf("CITANZ-%05d", i+1)
	if g.chance(g.cfg.InvalidIDChance) {
		id = [...]string{"", "TEST-" + id[7:], "citanz-" + id[7:], " " + id}[g.rand.Intn(4)]
	}

	p := g.place()
	signedUp := g.now.Add(-time.Duration(g.rand.Intn(3*365*24*60)) * time.Minute)
	expiry := signedUp.AddDate(1+g.rand.Intn(2), 0, 0)
	lastPaid := signedUp.Add(time.Duration(g.rand.Intn(30*24*60)) * time.Minute)
	lastLogin := g.now.Add(-time.Duration(g.rand.Intn(180*24*60)) * time.Minute)

	row := loader.Row{
		loader.ColMemberID:  id,
		loader.ColRegion:    pick(g.rand, p.spellings),
		loader.ColCity:      pick(g.rand, p.cities),
		loader.ColExpiry:    g.date(expiry, loader.LayoutExpiry),
		loader.ColSignedUp:  g.date(signedUp, loader.LayoutActivity),
		loader.ColLastLogin: g.date(lastLogin, loader.LayoutActivity),
	}
	// Members who never paid have no last payment date.
	if g.chance(0.8) {
		row[loader.ColLastPayment] = g.date(lastPaid, loader.LayoutLastPayment)
	} else {
		row[loader.ColLastPayment] = ""
	}
	return row
}

func (g *Generator) payment() loader.Row {
	paidAt := g.now.Add(-time.Duration(g.rand.Intn(2*365*24*60)) * time.Minute)
	amount := pick(g.rand, fees)
	if g.chance(g.cfg.MalformedChance) {
		amount = pick(g.rand, malformedAmounts)
	}
	return loader.Row{
		loader.ColPaidAt: g.date(paidAt, loader.LayoutActivity),
		loader.ColAmount: amount,
	}
}

// date formats t with layout, or returns a blank or malformed cell at the
// configured rates.
func (g *Generator) date(t time.Time, layout string) string {
	switch {
	case g.chance(g.cfg.BlankChance):
		return ""
	case g.chance(g.cfg.MalformedChance):
		return pick(g.rand, malformedDates)
	default:
		return t.Format(layout)
	}
}

func (g *Generator) place() place {
	n := g.rand.Intn(g.totalWeight)
	for _, p := range places {
		if n < p.weight {
			return p
		}
		n -= p.weight
	}
	return places[0]
}

func (g *Generator) chance(p float64) bool {
	return p > 0 && g.rand.Float64() < p
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
