package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs when a
// comparison carries none of its own.
var DefaultAssumptions = []string{
	"Rates are annual and applied monthly as rate / 12",
	"Mortgage interest is deducted from taxable income in the month it is paid",
	"Investment gains accrue on the prior month's savings and are not taxed",
	"Tax brackets: single-year table held constant (no inflation indexing)",
	"Payroll tax: flat rate, no Social Security wage base cap",
}

func assumptionsFor(list []string) []string {
	if len(list) == 0 {
		return DefaultAssumptions
	}
	return list
}
