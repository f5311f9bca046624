package core

import "testing"

func TestNormalizeToWeekly(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		period Period
		want   int
	}{
		{"weekly is identity", 150, Weekly, 150},
		{"monthly truncates", 100, Monthly, 23}, // 100*12/52 = 23.07...
		{"yearly truncates", 520, Yearly, 10},
		{"yearly below a year", 51, Yearly, 0},
		{"monthly exact", 130, Monthly, 30},
		{"zero weekly", 0, Weekly, 0},
		{"zero monthly", 0, Monthly, 0},
		{"zero yearly", 0, Yearly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeToWeekly(tt.amount, tt.period)
			if got != tt.want {
				t.Errorf("NormalizeToWeekly(%d, %q) = %d, want %d", tt.amount, tt.period, got, tt.want)
			}
		})
	}
}

func TestNormalizeToWeekly_WeeklyIdentity(t *testing.T) {
	for _, x := range []int{0, 1, 7, 52, 100, 1000000} {
		if got := NormalizeToWeekly(x, Weekly); got != x {
			t.Errorf("NormalizeToWeekly(%d, weekly) = %d, want %d", x, got, x)
		}
	}
}

func TestPeriodicAmount_Weekly(t *testing.T) {
	pa := PeriodicAmount{Amount: 1000, Period: Monthly}
	if got := pa.Weekly(); got != 230 {
		t.Errorf("Weekly() = %d, want 230", got)
	}
}

func TestPeriodValidate(t *testing.T) {
	for _, p := range []Period{Weekly, Monthly, Yearly} {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", p, err)
		}
	}
	if err := Period("daily").Validate(); err != ErrInvalidPeriod {
		t.Errorf("Validate(daily) = %v, want ErrInvalidPeriod", err)
	}
	if err := Period("").Validate(); err != ErrInvalidPeriod {
		t.Errorf("Validate(empty) = %v, want ErrInvalidPeriod", err)
	}
}

func TestPeriodicAmountValidate(t *testing.T) {
	if err := (PeriodicAmount{Amount: -1, Period: Weekly}).Validate(); err != ErrNegativeAmount {
		t.Errorf("negative amount: got %v, want ErrNegativeAmount", err)
	}
	if err := (PeriodicAmount{Amount: 10, Period: Monthly}).Validate(); err != nil {
		t.Errorf("valid amount: got %v, want nil", err)
	}
}

func TestProfileCurrency(t *testing.T) {
	p := &Profile{Name: "alice"}
	if got := p.Currency(); got != DefaultCurrency {
		t.Errorf("unset currency: got %q, want %q", got, DefaultCurrency)
	}
	p.CurrentCurrency = "NZD"
	if got := p.Currency(); got != "NZD" {
		t.Errorf("set currency: got %q, want NZD", got)
	}
}

func TestProfileValidate(t *testing.T) {
	if err := (&Profile{Name: "  "}).Validate(); err != ErrEmptyUsername {
		t.Errorf("blank name: got %v, want ErrEmptyUsername", err)
	}
	if err := (&Profile{Name: "bob"}).Validate(); err != nil {
		t.Errorf("valid name: got %v, want nil", err)
	}
}
