package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func findSubcommand(parent *cobra.Command, name string) *cobra.Command {
	for _, sub := range parent.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

// TestBuildCmdFlags verifies the build command keeps the short flags used by existing scripts.
func TestBuildCmdFlags(t *testing.T) {
	cmd := BuildCmd()

	flags := map[string]string{
		"output-json-file":            "o",
		"vfctrl-host-bin-path":        "c",
		"dpgen-host-bin-path":         "d",
		"force-compatibility-version": "f",
		"verbose":                     "v",
	}
	for name, short := range flags {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("flag --%s not registered", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("flag --%s shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}

	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("build should require a config file argument")
	}
}

func TestCheckCmdArgs(t *testing.T) {
	cmd := CheckCmd()

	if err := cmd.Args(cmd, []string{"a.json"}); err == nil {
		t.Error("check should require a reference argument")
	}
	if err := cmd.Args(cmd, []string{"a.json", "ref.json"}); err != nil {
		t.Errorf("check with two arguments: %v", err)
	}
	if cmd.Flags().Lookup("dpgen-host-bin-path") != nil {
		t.Error("check does not run the image generator and should not take its path")
	}
}

func TestSubcommandStructure(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		subs   []string
	}{
		{SpispecCmd(), []string{"encode", "decode"}},
		{HistoryCmd(), []string{"list", "show"}},
	}

	for _, tt := range tests {
		for _, name := range tt.subs {
			sub := findSubcommand(tt.parent, name)
			if sub == nil {
				t.Errorf("%s %s not registered", tt.parent.Name(), name)
				continue
			}
			if sub.Short == "" {
				t.Errorf("%s %s should have a Short description", tt.parent.Name(), name)
			}
		}
	}
}
