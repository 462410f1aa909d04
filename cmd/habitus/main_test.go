package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func parser(t *testing.T) *kong.Kong {
	t.Helper()
	p, err := kong.New(&CLI,
		kong.Name("habitus"),
		kong.Vars{
			"version":  "test",
			"db":       "/tmp/habitus.db",
			"family":   "",
			"timezone": "Local",
			"debug":    "false",
		},
	)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	return p
}

func TestCommandTree(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"init"}, "init"},
		{[]string{"family", "add", "Silva", "--use"}, "family add <name>"},
		{[]string{"child", "edit", "c1", "--stars", "3"}, "child edit <id>"},
		{[]string{"habit", "add", "Read", "--child", "c1", "--child", "c2", "--schedule", "weekly", "--days", "mon,wed"}, "habit add <name>"},
		{[]string{"habit", "toggle", "c1", "h1", "--date", "2024-06-03"}, "habit toggle <child> <id>"},
		{[]string{"reward", "add", "Ice cream", "--cost", "5", "--limit", "day"}, "reward add <name>"},
		{[]string{"reward", "redeem", "c1", "r1"}, "reward redeem <child> <reward>"},
		{[]string{"redemption", "deliver", "x1"}, "redemption deliver <id>"},
		{[]string{"backup", "list"}, "backup list"},
		{[]string{"keyring", "status"}, "keyring status"},
		{[]string{"--family", "f1", "stars", "c1"}, "stars <child>"},
	}
	for _, tt := range tests {
		ctx, err := parser(t).Parse(tt.args)
		if err != nil {
			t.Errorf("Parse(%v) error = %v", tt.args, err)
			continue
		}
		if got := ctx.Command(); got != tt.want {
			t.Errorf("Parse(%v) command = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestFlagDefaults(t *testing.T) {
	if _, err := parser(t).Parse([]string{"--family", "f1", "habit", "due", "c1"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if CLI.FamilyID != "f1" {
		t.Errorf("FamilyID = %q, want f1", CLI.FamilyID)
	}
	if CLI.DB != "/tmp/habitus.db" {
		t.Errorf("DB = %q, want var default", CLI.DB)
	}
	if CLI.Habit.Due.Child != "c1" {
		t.Errorf("Child = %q", CLI.Habit.Due.Child)
	}
}

func TestParseRejectsBadSchedule(t *testing.T) {
	if _, err := parser(t).Parse([]string{"habit", "add", "Read", "--child", "c1", "--schedule", "yearly"}); err == nil {
		t.Error("expected enum error for unknown schedule")
	}
}

func TestIsPostgres(t *testing.T) {
	tests := map[string]bool{
		"postgres://u@localhost/habitus":   true,
		"postgresql://u@localhost/habitus": true,
		"host=localhost dbname=habitus":    true,
		"~/.config/habitus/habitus.db":     false,
	}
	for dsn, want := range tests {
		if got := isPostgres(dsn); got != want {
			t.Errorf("isPostgres(%q) = %v, want %v", dsn, got, want)
		}
	}
}
