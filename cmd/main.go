package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/Akashdeep-Patra/zgrid/internal/app"
	"github.com/Akashdeep-Patra/zgrid/internal/clipboard"
	"github.com/Akashdeep-Patra/zgrid/internal/common"
	"github.com/Akashdeep-Patra/zgrid/internal/config"
	"github.com/Akashdeep-Patra/zgrid/internal/grid"
	"github.com/Akashdeep-Patra/zgrid/internal/table"
	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/Akashdeep-Patra/zgrid/internal/ui/views"
	"github.com/Akashdeep-Patra/zgrid/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// A TUI spends most of its time waiting on terminal input. Two OS
	// threads cover rendering and message dispatch, and keep several
	// open instances from competing for every core.
	//
	// An explicit GOMAXPROCS is respected.
	if os.Getenv("GOMAXPROCS") == "" {
		maxProcs := 2
		if n := runtime.NumCPU(); n < maxProcs {
			maxProcs = n
		}
		runtime.GOMAXPROCS(maxProcs)
	}

	// Undo snapshots share rows, so even large tables stay well under this.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zgrid:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zgrid [file.json]",
		Short: "A spreadsheet-style table editor for the terminal",
		Long: `zgrid is a keyboard-first grid editor for JSON tables.

It renders large tables with a virtualized grid, supports range selection
with the keyboard or mouse, copy and paste as tab-separated text, drag
fill, frozen columns and conditional row, column and cell colors.

The file is created on first save if it does not exist.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"zgrid %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	rootCmd.AddCommand(buildDemoCmd())

	rootCmd.Flags().String("debug-log", "", "Write debug logs to this file")

	return rootCmd
}

// buildDemoCmd creates the `zgrid demo` subcommand that writes a sample table.
func buildDemoCmd() *cobra.Command {
	var (
		rows int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a sample table filled with placeholder text",
		Long: `Write a sample table with a column of every editable type and a few
color rules, then open it with: zgrid <out>`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must not be negative")
			}
			if err := table.NewFileService(out).Save(table.Demo(rows)); err != nil {
				return err
			}
			fmt.Printf("Wrote %d rows to %s\n", rows, out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", 1000, "Number of rows to generate")
	cmd.Flags().StringVarP(&out, "out", "o", "demo.json", "Output file")
	return cmd
}

// buildVersionCmd creates the `zgrid version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("zgrid %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `zgrid completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for zgrid.

Examples:
  # Bash (add to ~/.bashrc)
  zgrid completion bash > /etc/bash_completion.d/zgrid

  # Zsh (add to ~/.zshrc before compinit)
  zgrid completion zsh > "${fpath[1]}/_zgrid"

  # Fish
  zgrid completion fish > ~/.config/fish/completions/zgrid.fish

  # PowerShell
  zgrid completion powershell > zgrid.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

func runApp(cmd *cobra.Command, args []string) error {
	path := "table.json"
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logPath, _ := cmd.Flags().GetString("debug-log")
	if logPath == "" {
		logPath = cfg.DebugLog
	}
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "zgrid")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	svc := table.NewCachedService(table.NewFileService(path), cfg.CacheTTL)
	sess, err := table.Open(svc, cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	keys := views.NewKeys(cfg.Keys)
	clip := clipboard.New(os.Stderr)

	ctrl := grid.NewController(grid.Options{
		Keys:      keys.Grid,
		Mutations: sess.Mutations(),
		Clipboard: clip,
		IDs:       sess.IDs(),
		Frame:     sess.Frame,
		Structure: sess.Structure,
	})

	viewMap := map[common.TabID]common.View{
		common.TabGrid:    views.NewGridView(sess, ctrl, clip, cfg, styles, keys),
		common.TabColumns: views.NewColumnsView(sess, ctrl, cfg, styles),
		common.TabRules:   views.NewRulesView(sess, styles),
	}

	model := app.New(sess, cfg, styles, viewMap)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.Watch {
		if watchCh, stop, watchErr := watcher.Watch(path, 300*time.Millisecond); watchErr == nil {
			defer stop()
			go func() {
				for range watchCh {
					p.Send(common.FileChangedMsg{})
				}
			}()
		} else {
			log.Printf("watcher: %v", watchErr)
		}
	}

	_, err = p.Run()
	return err
}
