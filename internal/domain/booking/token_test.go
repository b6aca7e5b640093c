package booking

import "testing"

func TestParseTokenRoundTrip(t *testing.T) {
	tests := []struct {
		raw  string
		want Token
	}{
		{"flow:start", SimpleToken(TokenStart)},
		{"flow:phone", SimpleToken(TokenPhone)},
		{"loc:a1b2c3d4:3", LocationToken("a1b2c3d4", 3)},
		{"barber:a1b2c3d4:12", BarberToken("a1b2c3d4", 12)},
		{"day:a1b2c3d4:2024-06-01", DayToken("a1b2c3d4", "2024-06-01")},
		{"time:a1b2c3d4:14:00", TimeToken("a1b2c3d4", "14:00")},
		{"confirm:a1b2c3d4", ConfirmToken("a1b2c3d4")},
		{"cancel", SimpleToken(TokenCancel)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseToken(tt.raw)
			if err != nil {
				t.Fatalf("ParseToken(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseToken(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
			if got.String() != tt.raw {
				t.Errorf("String() = %q, want %q", got.String(), tt.raw)
			}
		})
	}
}

func TestParseTokenRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"loc",
		"loc:",
		"loc:3",
		"loc:m1:abc",
		"loc:m1:0",
		"loc::3",
		"barber:m1:-1",
		"day:m1:01.06.2024",
		"day:m1:2024-02-30",
		"time:14:00",
		"time:m1:9:00",
		"time:m1:25:00",
		"confirm",
		"confirm:",
		"confirm:a-b",
		"slot:m1:1:2024-06-01:14:00",
		"flow:unknown",
	} {
		if _, err := ParseToken(raw); err == nil {
			t.Errorf("ParseToken(%q) error = nil, want error", raw)
		}
	}
}

func TestTokenIssuedBy(t *testing.T) {
	tests := []struct {
		tok      Token
		wantStep Step
		wantOK   bool
	}{
		{LocationToken("m", 1), StepChoosingLocation, true},
		{BarberToken("m", 1), StepChoosingBarber, true},
		{DayToken("m", "2024-06-01"), StepChoosingDay, true},
		{TimeToken("m", "10:00"), StepChoosingTime, true},
		{ConfirmToken("m"), StepConfirming, true},
		{SimpleToken(TokenCancel), StepIdle, false},
		{SimpleToken(TokenStart), StepIdle, false},
		{SimpleToken(TokenPhone), StepIdle, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			step, ok := tt.tok.IssuedBy()
			if step != tt.wantStep || ok != tt.wantOK {
				t.Errorf("IssuedBy() = %q, %v; want %q, %v", step, ok, tt.wantStep, tt.wantOK)
			}
		})
	}
}

func TestTokenMatches(t *testing.T) {
	current := State{Step: StepConfirming, MenuID: "menu2"}

	tests := []struct {
		name string
		tok  Token
		st   State
		want bool
	}{
		{"current menu", ConfirmToken("menu2"), current, true},
		{"older menu same step", ConfirmToken("menu1"), current, false},
		{"other step", TimeToken("menu2", "10:00"), current, false},
		{"state without menu", ConfirmToken(""), State{Step: StepConfirming}, false},
		{"cancel from anywhere", SimpleToken(TokenCancel), current, true},
		{"start from idle", SimpleToken(TokenStart), State{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Matches(tt.st); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewMenuIDIsValidAndFresh(t *testing.T) {
	a, b := NewMenuID(), NewMenuID()
	if !validMenuID(a) || len(a) != menuIDLen {
		t.Errorf("NewMenuID() = %q", a)
	}
	if a == b {
		t.Errorf("two menus share id %q", a)
	}
}
