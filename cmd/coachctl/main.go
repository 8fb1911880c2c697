// Command coachctl is the AFL Coach operations CLI.
//
// Usage:
//
//	coachctl login --team-id 541293 --session-cookie <cookie>
//	coachctl logout
//	coachctl dashboard
//	coachctl captains --round 12 --limit 5
//	coachctl cashcows
//	coachctl trade score --out "Harley Reid" --in "Nick Daicos"
//	coachctl alerts scan
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aflcoach/aflcoach-data/internal/afl"
	"github.com/aflcoach/aflcoach-data/internal/alerts"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/credstore"
	"github.com/aflcoach/aflcoach-data/internal/service"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "coachctl",
		Short: "AFL Coach operations CLI",
	}

	root.AddCommand(loginCmd())
	root.AddCommand(logoutCmd())
	root.AddCommand(dashboardCmd())
	root.AddCommand(captainsCmd())
	root.AddCommand(cashcowsCmd())
	root.AddCommand(tradeCmd())
	root.AddCommand(alertsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// login / logout commands
// --------------------------------------------------------------------------

func loginCmd() *cobra.Command {
	var teamID, sessionCookie, apiToken string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store AFL Fantasy credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == "" || sessionCookie == "" {
				return fmt.Errorf("--team-id and --session-cookie are required")
			}
			return runWithStore(func(ctx context.Context, store credstore.Store) error {
				creds := credstore.Credentials{
					TeamID:        teamID,
					SessionCookie: sessionCookie,
					APIToken:      apiToken,
				}
				if err := store.Save(ctx, creds); err != nil {
					return fmt.Errorf("save credentials: %w", err)
				}
				fmt.Printf("Credentials stored for team %s\n", teamID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&teamID, "team-id", "", "AFL Fantasy team ID")
	cmd.Flags().StringVar(&sessionCookie, "session-cookie", "", "Session cookie from an authenticated browser session")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "Optional bearer token")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, store credstore.Store) error {
				if err := store.Clear(ctx); err != nil {
					return fmt.Errorf("clear credentials: %w", err)
				}
				fmt.Println("Credentials cleared")
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// data commands
// --------------------------------------------------------------------------

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Fetch the combined team dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(func(ctx context.Context, svc *service.Service) error {
				dash, err := svc.Dashboard(ctx)
				if err != nil {
					return err
				}
				return printJSON(dash)
			})
		},
	}
}

func captainsCmd() *cobra.Command {
	var round, limit int
	cmd := &cobra.Command{
		Use:   "captains",
		Short: "Rank captain suggestions for a round",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(func(ctx context.Context, svc *service.Service) error {
				suggestions, err := svc.Captains(ctx, round, limit)
				if err != nil {
					return err
				}
				return printJSON(suggestions)
			})
		},
	}
	cmd.Flags().IntVar(&round, "round", 0, "Round number (0 = use the round implied by projections)")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of suggestions")
	return cmd
}

func cashcowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cashcows",
		Short: "Sell-timing analysis for cash cows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(func(ctx context.Context, svc *service.Service) error {
				analyses, err := svc.CashCows(ctx)
				if err != nil {
					return err
				}
				return printJSON(analyses)
			})
		},
	}
}

func tradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade analysis",
	}
	cmd.AddCommand(tradeScoreCmd())
	return cmd
}

func tradeScoreCmd() *cobra.Command {
	var playerOut, playerIn string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a proposed trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerOut == "" || playerIn == "" {
				return fmt.Errorf("--out and --in are required")
			}
			return runWithService(func(ctx context.Context, svc *service.Service) error {
				rec, err := svc.ScoreTrade(ctx, playerOut, playerIn)
				if err != nil {
					return err
				}
				return printJSON(rec)
			})
		},
	}
	cmd.Flags().StringVar(&playerOut, "out", "", "Player ID or name to trade out")
	cmd.Flags().StringVar(&playerIn, "in", "", "Player ID or name to trade in")
	return cmd
}

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Alert operations",
	}
	cmd.AddCommand(alertsScanCmd())
	return cmd
}

func alertsScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run alert rules against the current player list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(func(ctx context.Context, svc *service.Service) error {
				added, err := svc.ScanAlerts(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("%d new alerts\n", added)
				return printJSON(svc.AlertStore().Active())
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithStore handles config loading, credential store connection, and
// context cancellation.
func runWithStore(fn func(ctx context.Context, store credstore.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rs, err := credstore.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("connect to credential store: %w", err)
	}
	defer rs.Close()

	return fn(ctx, rs)
}

// runWithService builds a one-shot service (no cache, no persistence) around
// the upstream client.
func runWithService(fn func(ctx context.Context, svc *service.Service) error) error {
	return runWithStore(func(ctx context.Context, store credstore.Store) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		client := afl.NewClient(cfg.FantasyBaseURL, store, cfg.FantasyRequestsPerMin, logger)
		svc := service.New(client, cache.New(false), alerts.NewStore(), nil, logger)
		return fn(ctx, svc)
	})
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
