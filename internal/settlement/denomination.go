package settlement

// Denomination is a unit of currency the till can hand back.
type Denomination struct {
	Name       string
	ValueCents int64
}

// denominations is ordered by descending face value.  Each unit is a
// multiple of the next smaller units in the way US currency is, which
// keeps greedy change-making optimal.
var denominations = []Denomination{
	{Name: "Thousands", ValueCents: 100000},
	{Name: "Five-hundreds", ValueCents: 50000},
	{Name: "Hundreds", ValueCents: 10000},
	{Name: "Fifties", ValueCents: 5000},
	{Name: "Twenties", ValueCents: 2000},
	{Name: "Tens", ValueCents: 1000},
	{Name: "Fives", ValueCents: 500},
	{Name: "Dollars", ValueCents: 100},
	{Name: "Quarters", ValueCents: 25},
	{Name: "Dimes", ValueCents: 10},
	{Name: "Nickels", ValueCents: 5},
	{Name: "Pennies", ValueCents: 1},
}

// Piece is a count of one denomination within a change breakdown.
type Piece struct {
	Denomination Denomination
	Count        int64
}

// Change is a breakdown of an amount into denominations, largest first.
// Denominations with a zero count are left out.
type Change []Piece

// TotalCents sums the face value of every piece.
func (c Change) TotalCents() int64 {
	var total int64
	for _, p := range c {
		total += p.Denomination.ValueCents * p.Count
	}
	return total
}

// Pieces returns the number of notes and coins in the breakdown.
func (c Change) Pieces() int64 {
	var n int64
	for _, p := range c {
		n += p.Count
	}
	return n
}
