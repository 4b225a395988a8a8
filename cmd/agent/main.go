package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"go-jobfinder-automation/internal/agent"
	"go-jobfinder-automation/internal/backend"
	"go-jobfinder-automation/internal/config"
	"go-jobfinder-automation/internal/dedup"
	"go-jobfinder-automation/internal/export"
	"go-jobfinder-automation/internal/reporter"
	"go-jobfinder-automation/internal/search"
	"go-jobfinder-automation/internal/secrets"
	"go-jobfinder-automation/internal/task"
)

var version = "dev"

var (
	configPath string
	taskFile   string
	goal       string

	//filter flags, 1:1 with the recognized filter keys
	keywords        string
	location        string
	jobType         string
	experienceLevel string
	remote          string
	datePosted      string
	easyApply       bool
	company         string
	industry        string
	salary          string

	backendName string
	passes      int
	onlyNew     bool
	dryRun      bool
	save        bool
	format      string
	output      string
	jsonOut     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "jobfinder",
		Short:   "Automated job search through a browser automation backend",
		Version: version,
		Long: `jobfinder drives a browser session against LinkedIn job search,
normalizes your filters into the site's query vocabulary, extracts and
deduplicates the listings, and can export the result set. Any action that
changes remote state requires an explicit confirmation.`,
		Example: `  # Search with flags
  jobfinder --keywords "golang developer" --location "Amsterdam" --job-type full-time --remote remote

  # Search from a task file and save the results as CSV
  jobfinder --task task.yaml --save --format csv

  # Print the URL that would be visited, without driving the backend
  jobfinder --keywords nurse --location Utrecht --dry-run`,
		RunE:         runSearch,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
	rootCmd.Flags().StringVar(&taskFile, "task", "", "Path to a YAML/JSON task description (goal + filters)")
	rootCmd.Flags().StringVarP(&goal, "goal", "g", "", "Natural-language goal for the search")

	rootCmd.Flags().StringVarP(&keywords, "keywords", "k", "", "Search keywords")
	rootCmd.Flags().StringVarP(&location, "location", "l", "", "Location filter")
	rootCmd.Flags().StringVar(&jobType, "job-type", "", "Job type (full-time, part-time, contract, ...)")
	rootCmd.Flags().StringVar(&experienceLevel, "experience", "", "Experience level (entry, associate, senior, ...)")
	rootCmd.Flags().StringVar(&remote, "remote", "", "Workplace type (on-site, remote, hybrid)")
	rootCmd.Flags().StringVar(&datePosted, "date-posted", "", "Recency window (past day, past week, past month)")
	rootCmd.Flags().BoolVar(&easyApply, "easy-apply", false, "Only listings with easy apply")
	rootCmd.Flags().StringVar(&company, "company", "", "Company filter")
	rootCmd.Flags().StringVar(&industry, "industry", "", "Industry filter")
	rootCmd.Flags().StringVar(&salary, "salary", "", "Salary filter")

	rootCmd.Flags().StringVar(&backendName, "backend", "simulated", "Automation backend (simulated, playwright)")
	rootCmd.Flags().IntVar(&passes, "passes", 0, "Scroll passes (default from config)")
	rootCmd.Flags().BoolVar(&onlyNew, "only-new", false, "Drop records already seen by previous runs")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the search URL and normalized filters, then exit")
	rootCmd.Flags().BoolVar(&save, "save", false, "Export the result set to a file")
	rootCmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "Export format (json, csv)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Export file path (default: timestamped name in the output dir)")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full result envelope as JSON")

	rootCmd.AddCommand(authCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Load(configPath)

	t, err := buildTask()
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println(search.BuildURL(cfg.BaseSearchURL, t.Filters))
		applied, _ := json.MarshalIndent(search.AppliedFilters(t.Filters), "", "  ")
		fmt.Println(string(applied))
		return nil
	}

	be, cleanup, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	scrollPasses := cfg.ScrollPasses
	if passes > 0 {
		scrollPasses = passes
	}

	inv := agent.NewInvocation(be, agent.Options{
		BaseURL: cfg.BaseSearchURL,
		Extract: search.Options{
			SessionMarker:  cfg.SessionMarker,
			SessionTimeout: time.Duration(cfg.SessionTimeoutMs) * time.Millisecond,
			ScrollPasses:   scrollPasses,
			MinDelay:       time.Duration(cfg.MinDelayMs) * time.Millisecond,
			MaxDelay:       time.Duration(cfg.MaxDelayMs) * time.Millisecond,
			RateLimit:      cfg.RateLimitPerSec,
		},
	})

	env := inv.Search(ctx, t)

	if onlyNew && env.Success {
		cache := dedup.NewSeenCache(cfg.CachePath)
		var fresh []search.Record
		var ids []string
		for _, r := range env.Records {
			if !cache.IsSeen(r.ID) {
				fresh = append(fresh, r)
				ids = append(ids, r.ID)
			}
		}
		log.Printf("🆕 Only-new: %d total -> %d unseen records", len(env.Records), len(fresh))
		cache.Add(ids)
		env.Records = fresh
		env.Count = len(fresh)
	}

	printEnvelope(env)

	if save && env.Success {
		path := output
		if path == "" {
			if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			path = filepath.Join(cfg.OutputDir, export.Filename(format, env.Timestamp))
		}
		written, err := inv.Export(ctx, env.Records, format, path)
		if err != nil {
			return err
		}
		log.Printf("📁 Results saved to %s", written)
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		rep, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram reporter unavailable: %v", err)
		} else if err := rep.SendSummary(env); err != nil {
			log.Printf("⚠️ Failed to send summary: %v", err)
		}
	}

	if !env.Success {
		return fmt.Errorf("search failed: %s", env.Error)
	}
	return nil
}

//buildTask assembles the Task either from a task file or from the 1:1 filter
//flags; both forms normalize to the same internal shape.
func buildTask() (task.Task, error) {
	if taskFile != "" {
		return task.Load(taskFile)
	}

	t := task.Task{
		Goal: goal,
		Filters: task.FilterSet{
			Keywords:        keywords,
			Location:        location,
			JobType:         jobType,
			ExperienceLevel: experienceLevel,
			Remote:          remote,
			DatePosted:      datePosted,
			EasyApply:       easyApply,
			Company:         company,
			Industry:        industry,
			Salary:          salary,
		},
	}
	if t.Goal == "" {
		if keywords == "" {
			return task.Task{}, fmt.Errorf("%w: provide --goal, --keywords or --task", task.ErrMalformedTask)
		}
		t.Goal = fmt.Sprintf("Find %s jobs", keywords)
	}
	return t, nil
}

func buildBackend(cfg *config.Config) (backend.Backend, func(), error) {
	switch backendName {
	case "simulated":
		log.Println("🤖 Using the simulated backend (no real browser)")
		return backend.NewSimulated(nil), func() {}, nil
	case "playwright":
		pw, err := backend.NewPlaywright(context.Background(), backend.PlaywrightOptions{
			Headless:    cfg.Headless,
			CookiesPath: cfg.CookiesPath,
			ConfirmFunc: promptConfirmation,
		})
		if err != nil {
			return nil, nil, err
		}
		return pw, func() { pw.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown backend: %s", backendName)
}

//promptConfirmation asks on the terminal. Anything but an explicit yes denies.
func promptConfirmation(action, details string) bool {
	fmt.Printf("⚠️ Irreversible action requested: %s\n   %s\n   Proceed? [y/N]: ", action, details)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}

func printEnvelope(env *agent.Envelope) {
	if jsonOut {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			log.Printf("⚠️ Failed to marshal envelope: %v", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	if !env.Success {
		fmt.Printf("\n❌ Search failed: %s\n", env.Error)
		fmt.Printf("📦 Kept %d partial records, %d actions logged\n", len(env.PartialRecords), len(env.ActionLog))
		return
	}

	fmt.Printf("\n✅ Found %d unique record(s)\n", env.Count)
	for i, r := range env.Records {
		fmt.Printf("\n%d. %s\n", i+1, r.Title)
		fmt.Printf("   Company:  %s\n", r.Company)
		fmt.Printf("   Location: %s\n", r.Location)
		if !r.PostedDate.IsZero() {
			fmt.Printf("   Posted:   %s\n", r.PostedDate.Format("2006-01-02"))
		}
		if r.EasyApply {
			fmt.Printf("   Easy apply available\n")
		}
		fmt.Printf("   Apply:    %s\n", r.URL)
	}
	fmt.Printf("\n🧾 %d actions logged (run %s)\n", len(env.ActionLog), env.RunID)
}

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage secrets in the OS keychain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-token [token]",
		Short: "Store the Telegram bot token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.SetTelegramToken(args[0]); err != nil {
				return err
			}
			fmt.Println("Token stored.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete-token",
		Short: "Remove the Telegram bot token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.DeleteTelegramToken(); err != nil {
				return err
			}
			fmt.Println("Token removed.")
			return nil
		},
	})

	return cmd
}
