package main

import "testing"

func TestMigrateCmd_Subcommands(t *testing.T) {
	cmd := migrateCmd()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"up", "status"} {
		if !names[want] {
			t.Errorf("expected migrate subcommand %q", want)
		}
	}
}

func TestMigrateCmd_DirFlagDefault(t *testing.T) {
	cmd := migrateCmd()
	for _, sub := range cmd.Commands() {
		flag := sub.Flags().Lookup("dir")
		if flag == nil {
			t.Errorf("subcommand %q missing --dir flag", sub.Name())
			continue
		}
		if flag.DefValue != "./migrations" {
			t.Errorf("subcommand %q --dir default = %q, want ./migrations", sub.Name(), flag.DefValue)
		}
	}
}

func TestServeCmd(t *testing.T) {
	cmd := serveCmd()
	if cmd.Use != "serve" {
		t.Errorf("expected serve command, got %q", cmd.Use)
	}
	if cmd.RunE == nil {
		t.Error("serve command has no run function")
	}
}
