package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var shellInitCmd = &cobra.Command{
	Use:   "shell-init <shell>",
	Short: "Emit the shell integration function",
	Long: `Print a shell function that wraps wt and changes directory when a
command leaves a navigation file behind. Works anywhere; no container
is needed.

  eval "$(wt shell-init zsh)"    # add to .zshrc
  eval "$(wt shell-init bash)"   # add to .bashrc
  wt shell-init fish | source    # add to config.fish`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE:      runShellInit,
}

func init() {
	rootCmd.AddCommand(shellInitCmd)
}

func runShellInit(cmd *cobra.Command, args []string) error {
	switch strings.ToLower(args[0]) {
	case "bash", "zsh":
		fmt.Print(shellInitBashZsh)
	case "fish":
		fmt.Print(shellInitFish)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", args[0])
	}
	return nil
}

// The nav file is keyed by the shell's pid, which is the wt process's
// parent pid: each shell only ever observes its own navigations.
const shellInitBashZsh = `wt() {
  command wt "$@"
  local rc=$?
  local nav="${TMPDIR:-/tmp}/wt-nav-$$"
  if [ -f "$nav" ]; then
    local dir
    dir=$(cat "$nav")
    rm -f "$nav"
    if [ -n "$dir" ] && [ -d "$dir" ]; then
      cd "$dir"
    fi
  fi
  return $rc
}
`

const shellInitFish = `function wt
  command wt $argv
  set -l rc $status
  set -l tmp /tmp
  if set -q TMPDIR
    set tmp (string trim -r -c / $TMPDIR)
  end
  set -l nav "$tmp/wt-nav-$fish_pid"
  if test -f "$nav"
    set -l dir (cat "$nav")
    rm -f "$nav"
    if test -n "$dir"; and test -d "$dir"
      cd "$dir"
    end
  end
  return $rc
end
`
