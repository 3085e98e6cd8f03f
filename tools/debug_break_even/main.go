package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/homeequity/buyrent/internal/calculation"
	"github.com/homeequity/buyrent/internal/config"
)

// Prints the month-by-month wealth of both scenarios and their running difference as CSV,
// for eyeballing where the lead changes hands.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngineWithConfig(cfg.Tax)
	res, err := engine.RunComparison(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	n := res.Buy.Len()
	if res.Rent.Len() < n {
		n = res.Rent.Len()
	}
	if n == 0 {
		fmt.Println("no projection data")
		return
	}

	fmt.Println("Month,Payment,BuyWealth,BuyEquity,BuySavings,RentWealth,RentSavings,BuyMinusRent")
	for idx := 0; idx < n; idx++ {
		b := res.Buy.Records[idx]
		r := res.Rent.Records[idx]
		fmt.Printf("%d,%d,%s,%s,%s,%s,%s,%s\n", idx, b.PaymentNumber,
			b.Wealth.StringFixed(2), b.HomeEquity.StringFixed(2), b.Savings.StringFixed(2),
			r.Wealth.StringFixed(2), r.Savings.StringFixed(2), b.Wealth.Sub(r.Wealth).StringFixed(2))
	}

	if be := res.BreakEven; be != nil {
		fmt.Printf("# break-even at month %d (year %s): %s ahead\n", be.Month, be.Year.StringFixed(2), be.Leader)
	} else {
		fmt.Println("# no break-even: the lead never changes")
	}
}
