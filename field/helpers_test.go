package field

func testFields() map[string]*Field {
	return map[string]*Field{
		"000000": {ID: "000000", Name: "sepal length", Optype: Numeric, ColumnNumber: 0},
		"000001": {ID: "000001", Name: "color", Optype: Categorical, ColumnNumber: 1, Categories: []string{"red", "blue"}},
		"000002": {
			ID: "000002", Name: "review", Optype: Text, ColumnNumber: 2,
			TermForms:    map[string][]string{"great": {"greater", "greatest"}},
			TermAnalysis: TermAnalysis{TokenMode: TokensOnly},
		},
		"000003": {
			ID: "000003", Name: "basket", Optype: Items, ColumnNumber: 3,
			ItemAnalysis: ItemAnalysis{Separator: ","},
		},
		"000004": {
			ID: "000004", Name: "city", Optype: Text, ColumnNumber: 4,
			TermAnalysis: TermAnalysis{TokenMode: FullTermsOnly},
		},
		"000005": {ID: "000005", Name: "species", Optype: Categorical, ColumnNumber: 5},
		"000006": {ID: "000006", Name: "price", Optype: Numeric, ColumnNumber: 6, Prefix: "$", Suffix: " USD"},
	}
}

func testView() *View {
	return NewView(testFields(), "000005", nil)
}
