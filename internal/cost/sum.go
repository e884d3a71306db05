package cost

// Sum adds costs. The payment type of the result is derived from the summed
// amounts. The points program is kept only when every addend carrying points
// names the same program.
func Sum(costs ...FlexibleCost) FlexibleCost {
	var (
		out       FlexibleCost
		points    int
		hasPoints bool
		program   string
		conflict  bool
	)

	for _, c := range costs {
		out.CashAmount += c.CashAmount
		out.TotalCashValue += c.TotalCashValue

		if c.PointsAmount == nil {
			continue
		}

		hasPoints = true
		points += *c.PointsAmount

		switch {
		case c.PointsProgram == "":
		case program == "":
			program = c.PointsProgram
		case program != c.PointsProgram:
			conflict = true
		}
	}

	if hasPoints {
		out.PointsAmount = intPtr(points)
		if !conflict {
			out.PointsProgram = program
		}
	}

	out.PaymentType = inferType(out.CashAmount, points)

	return out
}
