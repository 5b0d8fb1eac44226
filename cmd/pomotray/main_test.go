package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"pomotray": main,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("XDG_CONFIG_HOME", env.WorkDir+string(os.PathSeparator)+"cfg")
			return nil
		},
	})
}

func TestRootCommandName(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Name() != "pomotray" {
		t.Fatalf("expected root command name pomotray, got %q", cmd.Name())
	}
	if cmd.Flags().Lookup("terminal") == nil || cmd.PersistentFlags().Lookup("log-level") == nil {
		t.Fatalf("expected terminal and log-level flags")
	}
}
