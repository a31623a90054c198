package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"casetracker/internal/app"
	"casetracker/internal/command"
	"casetracker/internal/config"
	"casetracker/internal/domain"
	"casetracker/internal/events"
	"casetracker/internal/store"
	"casetracker/internal/textfmt"
	"casetracker/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "casetracker",
	Short: "Track incident case records",
	Long: `casetracker keeps incident case records in a workspace and lets you add,
list, find, edit, close, reopen and delete them from an interactive shell.
- Workspace: a directory holding .casetracker/ with cases.txt, settings.yml,
  the events.jsonl journal and casetracker.log.
- Cases: one record per incident, each in a category (Theft, Arson, Murder, ...)
  with its own extra fields.
- Dates: typed and shown with strftime patterns you can change with 'setting'.
Run without a subcommand to start the shell; type 'help' inside it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := store.EnsureWorkspace(viper.GetString("workspace"))
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *app.Session) error {
			sh := &app.Shell{
				Session:   s,
				In:        os.Stdin,
				Printer:   ui.New(os.Stdout, useColor()),
				PromptOut: os.Stdout,
			}
			if term.IsTerminal(int(os.Stdin.Fd())) {
				sh.Prompt = "> "
			}
			return sh.Run(cmd.Context())
		})
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("CASETRACKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().String("data-file", "", "case file (default <workspace>/.casetracker/cases.txt)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().String("log-file", "", "log file, '-' for stderr (default <workspace>/.casetracker/casetracker.log)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("autosave", true, "save after every change")
	for _, name := range []string{"workspace", "data-file", "log-level", "log-format", "log-file", "no-color", "autosave"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func registerCommands() {
	rootCmd.AddCommand(execCmd())
	rootCmd.AddCommand(casesCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(logCmd())
}

func execCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exec <command line>",
		Short:   "Run one shell command against the workspace",
		Example: `  casetracker exec add --category theft --title "Shop Theft" --date 2025-10-14 --info "Stolen electronics"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(s *app.Session) error {
				p := ui.New(os.Stdout, useColor())
				res := s.Execute(joinArgs(args))
				if res.Err != nil {
					p.ShowError(res.Lines...)
					return res.Err
				}
				p.Show(res.Lines...)
				return nil
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// joinArgs rebuilds a command line, quoting arguments the shell had grouped.
func joinArgs(args []string) string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") && !strings.Contains(a, `"`) {
			a = `"` + a + `"`
		}
		out[i] = a
	}
	return strings.Join(out, " ")
}

type caseView struct {
	ID        string            `json:"id"`
	Category  string            `json:"category"`
	Status    string            `json:"status"`
	Title     string            `json:"title"`
	Date      string            `json:"date"`
	Info      string            `json:"info"`
	Victim    string            `json:"victim,omitempty"`
	Officer   string            `json:"officer,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

func viewOf(c *domain.Case) caseView {
	v := caseView{
		ID:        c.ID(),
		Category:  string(c.Category()),
		Status:    c.StatusLabel(),
		Title:     c.Title(),
		Date:      c.Date().Format(domain.SaveDateLayout),
		Info:      c.Info(),
		Victim:    c.Victim(),
		Officer:   c.Officer(),
		CreatedAt: c.CreatedAt().Format(domain.SaveTimestampLayout),
		UpdatedAt: c.UpdatedAt().Format(domain.SaveTimestampLayout),
	}
	for _, spec := range c.Schema() {
		if f := c.Field(spec.Name); !f.IsNull() {
			if v.Fields == nil {
				v.Fields = map[string]string{}
			}
			v.Fields[spec.Name] = f.String()
		}
	}
	return v
}

func parseStatus(s string) (command.ListStatus, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return command.ListAll, nil
	case "open":
		return command.ListOpen, nil
	case "closed":
		return command.ListClosed, nil
	default:
		return command.ListAll, fmt.Errorf("invalid status %q: expected open, closed or all", s)
	}
}

func casesCmd() *cobra.Command {
	var status string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Print cases as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			return withSession(func(s *app.Session) error {
				cases := s.Repo.List(st)
				if asJSON {
					views := make([]caseView, 0, len(cases))
					for _, c := range cases {
						views = append(views, viewOf(c))
					}
					return printJSON(views)
				}
				layouts := s.Settings.Layouts()
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Status", "Category", "Date", "Title", "Victim", "Officer"})
				for _, c := range cases {
					tw.AppendRow(table.Row{
						c.ID(), c.StatusLabel(), c.Category(), c.Date().Format(layouts.Date),
						textfmt.Truncate(c.Title(), domain.TitleWidth), c.Victim(), c.Officer(),
					})
				}
				tw.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d case(s)", len(cases))})
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "status filter: open, closed or all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func seedCmd() *cobra.Command {
	var count int
	var seed int64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate realistic demo cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			return withSession(func(s *app.Session) error {
				cases, err := app.Seed(s.Repo, count, seed)
				if err != nil {
					return err
				}
				fmt.Printf("Seeded %d case(s) into %s\n", len(cases), s.Path())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 20, "number of cases")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	return cmd
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Inspect date settings",
		Long:  "Settings hold the strftime patterns used to read typed dates and to show dates and timestamps. Change them from the shell with 'setting'.",
	}
	cfg.AddCommand(configShowCmd())
	return cfg
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			cfg, err := config.LoadOptional(path)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Printf("# %s\n%s", path, data)
			return nil
		},
	}
}

func logCmd() *cobra.Command {
	log := &cobra.Command{
		Use:   "log",
		Short: "Event journal",
		Long:  "Every change to a case or a setting is appended to the workspace journal.",
	}
	log.AddCommand(logTailCmd())
	return log
}

func logTailCmd() *cobra.Command {
	var n int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show the latest events",
		RunE: func(cmd *cobra.Command, args []string) error {
			evts, err := events.TailFile(events.Path(viper.GetString("workspace")), n)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(evts)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Time", "Type", "Case", "Payload"})
			for _, e := range evts {
				payload := ""
				if len(e.Payload) > 0 {
					b, _ := json.Marshal(e.Payload)
					payload = string(b)
				}
				tw.AppendRow(table.Row{e.TS, e.Type, e.CaseID, payload})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "lines", "n", 20, "number of events")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

// --- helpers ---

func withSession(fn func(*app.Session) error) (err error) {
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	s, err := app.Open(app.Options{
		Workspace: viper.GetString("workspace"),
		DataFile:  viper.GetString("data-file"),
		Autosave:  viper.GetBool("autosave"),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func openLogger() (*slog.Logger, func(), error) {
	cfg := config.LogConfig{Level: viper.GetString("log-level"), Format: viper.GetString("log-format")}
	path := viper.GetString("log-file")
	if path == "-" {
		return app.NewLogger(os.Stderr, cfg), func() {}, nil
	}
	if path == "" {
		path = filepath.Join(viper.GetString("workspace"), config.Dir, "casetracker.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return app.NewLogger(f, cfg), func() { _ = f.Close() }, nil
}

func useColor() bool {
	return !viper.GetBool("no-color") && term.IsTerminal(int(os.Stdout.Fd()))
}

func printJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
