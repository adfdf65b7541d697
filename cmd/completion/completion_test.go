package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "phrasekit"}
	root.AddCommand(&cobra.Command{Use: "tree", Short: "Show the phrase tree"})
	root.AddCommand(&cobra.Command{Use: "search", Short: "Search phrases"})
	return root
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "_phrasekit"},
		{"zsh", "compdef"},
		{"fish", "complete -c phrasekit"},
		{"powershell", "phrasekit"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Generate(testRootCmd(), &buf, tt.shell); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			if !strings.HasPrefix(out, "# phrasekit "+tt.shell+" completion") {
				t.Errorf("missing header: %q", out[:min(len(out), 60)])
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s completion should contain %q", tt.shell, tt.want)
			}
		})
	}
}

func TestGenerateUnsupported(t *testing.T) {
	if err := Generate(testRootCmd(), &bytes.Buffer{}, "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestCommandRejectsMissingShell(t *testing.T) {
	root := testRootCmd()
	root.AddCommand(NewCommand(root))
	root.SetArgs([]string{"completion"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Error("expected error without a shell argument")
	}
}
