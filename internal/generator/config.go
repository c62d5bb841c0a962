package generator

import "time"

// Config drives the synthetic export generator.
type Config struct {
	NumMembers  int
	NumPayments int
	// InvalidIDChance is the share of member rows whose identifier lacks the
	// CITANZ- prefix.
	InvalidIDChance float64
	// MalformedChance is the share of date and amount cells written in a
	// format the loader cannot parse.
	MalformedChance float64
	// BlankChance is the share of optional cells left empty.
	BlankChance float64
	Seed        int64
	// Now anchors generated dates; zero means time.Now.
	Now time.Time
}

// DefaultConfig returns a small dataset with a realistic amount of noise.
func DefaultConfig() Config {
	return Config{
		NumMembers:      2000,
		NumPayments:     5000,
		InvalidIDChance: 0.03,
		MalformedChance: 0.02,
		BlankChance:     0.1,
		Seed:            42,
	}
}
