package validators

import "testing"

func TestCheckUserID(t *testing.T) {
	testCases := []struct {
		Name     string
		UserID   string
		Expected bool
	}{
		{Name: "Numeric id #1", UserID: "42", Expected: true},
		{Name: "Negative chat id #2", UserID: "-100123", Expected: true},
		{Name: "Empty #3", UserID: "", Expected: false},
		{Name: "Contains delimiter #4", UserID: "4_2", Expected: false},
		{Name: "Contains space #5", UserID: "4 2", Expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := CheckUserID(tc.UserID, "_"); got != tc.Expected {
				t.Errorf("CheckUserID(%q) = %v, expected %v", tc.UserID, got, tc.Expected)
			}
		})
	}
}

func TestCheckAmount(t *testing.T) {
	testCases := []struct {
		Name     string
		Amount   string
		Expected bool
	}{
		{Name: "Integer #1", Amount: "100", Expected: true},
		{Name: "Decimal #2", Amount: "99.50", Expected: true},
		{Name: "Zero #3", Amount: "0", Expected: false},
		{Name: "Negative #4", Amount: "-5", Expected: false},
		{Name: "Not a number #5", Amount: "сто", Expected: false},
		{Name: "Delimiter inside #6", Amount: "1_000", Expected: false},
		{Name: "Sub-kopeck fraction #7", Amount: "0.001", Expected: false},
		{Name: "Trailing zeros #8", Amount: "10.500", Expected: true},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if _, got := CheckAmount(tc.Amount); got != tc.Expected {
				t.Errorf("CheckAmount(%q) = %v, expected %v", tc.Amount, got, tc.Expected)
			}
		})
	}
}
