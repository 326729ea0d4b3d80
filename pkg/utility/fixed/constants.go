package fixed

var (
	NegOne    = New(-1, 0)
	Zero      = New(0, 0)
	PointFive = New(5, 1)
	One       = New(1, 0)
	Two       = New(2, 0)
	Ten       = New(10, 0)
	Hundred   = New(100, 0)
	Thousand  = New(1000, 0)

	// Sqrt252 annualizes daily volatility, 252 trading days
	Sqrt252 = New(1587450786638754, 14)
)
