package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"

	"togglr/internal/config"
	"togglr/internal/notify"
	"togglr/internal/state"
	"togglr/internal/timeutil"
	"togglr/internal/toggl"
	"togglr/internal/tui"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "togglr",
	Short: "Edit and close Toggl time entries from the terminal",
	Long:  "togglr loads your running Toggl entry into a small booking form where you can adjust the project, description and times, then stop or update it.",
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Open the booking form for the running entry",
	RunE:  runBook,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the entries of a day",
	RunE:  runStatus,
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List workspace projects",
	RunE:  runProjects,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API traffic")
	statusCmd.Flags().String("day", "today", "Day to list, e.g. 'today', 'yesterday', 'last friday'")

	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Toggl.APIToken == "" {
		return nil, fmt.Errorf("toggl API token not configured — run 'togglr config' to set it up")
	}
	return cfg, nil
}

// setup builds the one shared connection plus the state store it writes
// through to, and resolves the workspace (config first, then the user's
// default).
func setup(ctx context.Context, cfg *config.Config) (*toggl.Client, *state.Store, int64, error) {
	st := state.NewStore()
	client := toggl.New(cfg.Toggl.APIToken, cfg.Toggl.BaseURL, cfg.Toggl.WorkspaceID, st, cfg.SimulatedDelay(), newLogger())

	user, err := client.FetchUser(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("getting user info: %w", err)
	}

	workspaceID := cfg.Toggl.WorkspaceID
	if workspaceID == 0 {
		workspaceID = user.DefaultWorkspaceID
		client.SetWorkspace(workspaceID)
	}
	return client, st, workspaceID, nil
}

// loadCollections fetches clients before projects: project mapping resolves
// against whatever clients are already cached.
func loadCollections(ctx context.Context, client *toggl.Client, workspaceID int64) error {
	if _, err := client.FetchClients(ctx, workspaceID); err != nil {
		return fmt.Errorf("fetching clients: %w", err)
	}
	if _, err := client.FetchProjects(ctx, workspaceID); err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}
	return nil
}

func parseDay(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("day")
	if raw == "" || raw == "today" {
		return time.Now(), nil
	}
	day, err := naturaldate.Parse(raw, time.Now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", raw, err)
	}
	return day, nil
}

func runBook(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, st, workspaceID, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	if err := loadCollections(ctx, client, workspaceID); err != nil {
		return err
	}

	active, err := client.FetchActiveTimeEntry(ctx)
	if err != nil {
		return fmt.Errorf("fetching active entry: %w", err)
	}
	if active == nil {
		fmt.Println("No running entry.")
		return nil
	}

	notifier := notify.New(cfg.Notifications.Enabled)
	form := tui.NewForm(st, client, notifier)
	if _, err := tea.NewProgram(form).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	if form.Committed() {
		fmt.Println("Entry updated.")
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	day, err := parseDay(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, _, workspaceID, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	if err := loadCollections(ctx, client, workspaceID); err != nil {
		return err
	}

	entries, err := client.FetchTimeEntriesOfDay(ctx, day)
	if err != nil {
		return fmt.Errorf("fetching entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No entries on %s.\n", timeutil.FormatDate(day))
		return nil
	}

	var total time.Duration
	fmt.Printf("Entries on %s:\n\n", timeutil.FormatDate(day))
	for _, e := range entries {
		stop := "…    "
		if e.Stop != nil {
			stop = timeutil.FormatTime(*e.Stop)
			total += e.Stop.Sub(e.Start)
		}
		project := ""
		if e.Project != nil {
			project = e.Project.Label()
		}
		fmt.Printf("  %s–%s  %-30s  %s\n", timeutil.FormatTime(e.Start), stop, project, e.Description)
	}

	fmt.Printf("\nTotal: %dh %dmin (%d entries)\n",
		int(total.Hours()), int(total.Minutes())%60, len(entries))
	return nil
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, st, workspaceID, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	if err := loadCollections(ctx, client, workspaceID); err != nil {
		return err
	}

	projects := st.Projects()
	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Printf("Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		fmt.Printf("  %s\n", p.Label())
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data := `[toggl]
api_token = ""
workspace_id = 0

[dev]
enabled = false
simulated_delay_ms = 0

[notifications]
enabled = true
`
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
