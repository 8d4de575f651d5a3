package core

// Fixed locations of the batch run.
const (
	DefaultInputPath  = "data/raw/sales_data_raw.csv"
	DefaultOutputPath = "data/processed/sales_data_clean.csv"
)

// Canonical column names of the sales dataset.
const (
	ColProdName = "prodname"
	ColCategory = "category"
	ColPrice    = "price"
	ColQty      = "qty"
)

// SalesFieldSpecs defines the columns the cleaner acts on. Other columns,
// such as date_sold, pass through unchanged.
var SalesFieldSpecs = []FieldSpec{
	{Name: ColProdName, Type: FieldText, Required: true},
	{Name: ColCategory, Type: FieldText, Required: true},
	{Name: ColPrice, Type: FieldNumeric, Required: true},
	{Name: ColQty, Type: FieldNumeric, Required: true},
}

// textColumns returns the names of the FieldText specs, in order.
func textColumns(specs []FieldSpec) []string {
	var cols []string
	for _, spec := range specs {
		if spec.Type == FieldText {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

// numericRules returns one NumericRule per FieldNumeric spec, in order.
func numericRules(specs []FieldSpec) []NumericRule {
	var rules []NumericRule
	for _, spec := range specs {
		if spec.Type == FieldNumeric {
			rules = append(rules, NumericRule{Column: spec.Name})
		}
	}
	return rules
}
