package account

import "github.com/shopspring/decimal"

// Seed returns the reference account set loaded at process start. There is no
// persistence layer: the dataset lives in memory and is rebuilt on restart.
func Seed() []*Account {
	return []*Account{
		{
			Owner:        "Jonas Schmedtmann",
			PIN:          1111,
			InterestRate: decimal.RequireFromString("1.2"),
			Movements:    movements(200, 450, -400, 3000, -650, -130, 70, 1300),
		},
		{
			Owner:        "Jessica Davis",
			PIN:          2222,
			InterestRate: decimal.RequireFromString("1.5"),
			Movements:    movements(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
		},
		{
			Owner:        "Steven Thomas Williams",
			PIN:          3333,
			InterestRate: decimal.RequireFromString("0.7"),
			Movements:    movements(200, -200, 340, -300, -20, 50, 400, -460),
		},
		{
			Owner:        "Sarah Smith",
			PIN:          4444,
			InterestRate: decimal.NewFromInt(1),
			Movements:    movements(430, 1000, 700, 50, 90),
		},
	}
}

func movements(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.NewFromInt(v))
	}
	return out
}
