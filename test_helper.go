package folio

// Fixtures shared by the package tests. The sample data mirrors the shape of
// the brokerage exports: two funds plus one listed company, prices in pounds.

func samplePrices() []MarketPrice {
	return []MarketPrice{
		{Symbol: "LGII", Code: "GB00B0CNH163", Name: "Legal & General International Index", Price: GBP(2.50), Date: MustParse("2025-06-30")},
		{Symbol: "VFGA", Code: "GB00BD3RZ368", Name: "Vanguard FTSE Global All Cap", Price: GBP(1.80), Date: MustParse("2025-06-30")},
		{Symbol: "ACME", Code: "US00A1B2C3D4", Name: "ACME Inc", Price: GBP(12), Date: MustParse("2025-06-30")},
	}
}

func d(s string) Date { return MustParse(s) }
