package models

import "testing"

func TestCategoryTypeLabel(t *testing.T) {
	cases := []struct {
		categoryType CategoryType
		want         string
	}{
		{CategoryBTWQuarter, "BTW aangifte"},
		{CategoryAnnualReport, "Jaarrekening"},
		{CategoryTaxReturn, "Belastingaangifte"},
		{CategoryPayroll, "Loonadministratie"},
		{CategoryOther, "Document"},
		{CategoryType("something_new"), "Document"},
	}

	for _, tc := range cases {
		if got := tc.categoryType.Label(); got != tc.want {
			t.Errorf("Label(%q) = %q, want %q", tc.categoryType, got, tc.want)
		}
	}
}
