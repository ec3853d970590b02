package game

import "testing"

func TestRegisterAndLogin(t *testing.T) {
	engine := newTestEngine(t)

	if err := engine.Register("hero", "secret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := engine.Register("hero", "other"); !IsKind(err, KindConflict) {
		t.Fatalf("expected duplicate-name conflict, got %v", err)
	}
	if err := engine.Register("villain", ""); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("expected empty-password rejection, got %v", err)
	}

	if _, err := engine.Login("hero", "wrong"); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("expected wrong-password error, got %v", err)
	}
	if _, err := engine.Login("nobody", "secret"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected unknown-player error, got %v", err)
	}

	result, err := engine.Login("hero", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Name != "hero" {
		t.Fatalf("login name = %q", result.Name)
	}
	if result.Stats.Health != 100 || result.Stats.Level != 1 || result.Stats.CurrentMap != "slum" {
		t.Fatalf("unexpected starting stats: %+v", result.Stats)
	}

	if _, err := engine.Login("hero", "secret"); err != nil {
		t.Fatalf("second login returned error: %v", err)
	}
	if record := loadPlayer(t, engine, "hero"); record.TotalLogins != 2 {
		t.Fatalf("total logins = %d, want 2", record.TotalLogins)
	}
}

func TestRegisterNormalizesUnicodeNames(t *testing.T) {
	engine := newTestEngine(t)
	// NFD spelling first; the NFC spelling must collide with it.
	if err := engine.Register("cafe\u0301", "secret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := engine.Register("caf\u00e9", "secret"); !IsKind(err, KindConflict) {
		t.Fatalf("expected the NFC spelling to collide, got %v", err)
	}
	if _, err := engine.Login("cafe\u0301", "secret"); err != nil {
		t.Fatalf("login with the NFD spelling returned error: %v", err)
	}
}

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  hero  ", "hero", false},
		{"", "", true},
		{"has space", "", true},
		{"tab\tname", "", true},
		{"waaaaaaaaaaaaaaaaaaaaaaaaaaaaytoolong", "", true},
		{"Ünicode", "Ünicode", false},
	}
	for _, tc := range cases {
		got, err := NormalizeUsername(tc.in)
		if tc.wantErr {
			if !IsKind(err, KindInvalidArgument) {
				t.Fatalf("NormalizeUsername(%q) error = %v, want invalid argument", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("NormalizeUsername(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestSanitizeMessage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"line\r\nbreak", "line\nbreak"},
		{"tab\tspace", "tab space"},
		{"bell\x07", "bell"},
		{"zero\u200bwidth", "zerowidth"},
	}
	for _, tc := range cases {
		if got := SanitizeMessage(tc.in); got != tc.want {
			t.Fatalf("SanitizeMessage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
