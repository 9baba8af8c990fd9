package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/magabrotheeeer/sales-reporting/internal/dashboard"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/jwt"
	"github.com/magabrotheeeer/sales-reporting/internal/lib/period"
	"github.com/magabrotheeeer/sales-reporting/internal/reportclient"
)

// options собирает настройки из флагов, окружения DASHBOARD_* и .dashboard.yaml.
type options struct {
	Gateway   string        `mapstructure:"gateway"`
	Token     string        `mapstructure:"token"`
	JWTSecret string        `mapstructure:"jwt-secret"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Period    string        `mapstructure:"period"`
	Interval  time.Duration `mapstructure:"interval"`
	Verbose   bool          `mapstructure:"verbose"`
}

var opts = &options{}

var rootCmd = &cobra.Command{
	Use:           "dashboard",
	Short:         "Sales dashboard backed by the reporting gateway.",
	Long:          `Dashboard fetches top, bottom, total and region reports concurrently and shows derived KPIs.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadOptions()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShow(cmd.Context(), cmd.OutOrStdout())
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Refresh once and print the dashboard.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShow(cmd.Context(), cmd.OutOrStdout())
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh periodically; type YYYY-MM and Enter to switch the period.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWatch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var repCmd = &cobra.Command{
	Use:   "rep <id>",
	Short: "Show details of a sales rep from the top or bottom panel.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid rep id %q: %w", args[0], err)
		}
		return runRep(cmd.Context(), cmd.OutOrStdout(), id)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is ./.dashboard.yaml or $HOME/.dashboard.yaml)")
	flags.String("gateway", "http://localhost:8080", "reporting gateway base URL")
	flags.String("token", "", "bearer token sent to the gateway")
	flags.String("jwt-secret", "", "mint a short-lived token with this HMAC secret when --token is empty")
	flags.Duration("timeout", 15*time.Second, "timeout of a single report request")
	flags.String("period", "", "period YYYY-MM (default: previous calendar month)")
	flags.Bool("verbose", false, "log refreshes to stderr")
	watchCmd.Flags().Duration("interval", time.Minute, "refresh interval")

	_ = viper.BindPFlags(flags)
	_ = viper.BindPFlag("interval", watchCmd.Flags().Lookup("interval"))

	rootCmd.AddCommand(showCmd, watchCmd, repCmd)
}

// initConfig читает конфиг и переменные окружения DASHBOARD_*.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".dashboard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("DASHBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func loadOptions() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if err := viper.Unmarshal(opts); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newDashboard(log *slog.Logger, extra ...dashboard.Option) (*dashboard.Dashboard, error) {
	token := opts.Token
	if token == "" && opts.JWTSecret != "" {
		minted, err := jwt.NewHMACVerifier(opts.JWTSecret, time.Hour).GenerateToken("dashboard")
		if err != nil {
			return nil, fmt.Errorf("failed to mint token: %w", err)
		}
		token = minted
	}

	var dopts []dashboard.Option
	if opts.Period != "" {
		p, err := period.Parse(opts.Period)
		if err != nil {
			return nil, err
		}
		dopts = append(dopts, dashboard.WithPeriod(p))
	}
	dopts = append(dopts, extra...)

	client := reportclient.NewClient(opts.Gateway, token, opts.Timeout)
	return dashboard.New(client, log, dopts...), nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func runShow(ctx context.Context, out io.Writer) error {
	ctx, stop := signalContext(ctx)
	defer stop()

	d, err := newDashboard(newLogger())
	if err != nil {
		return err
	}
	snap, refreshErr := d.Refresh(ctx, d.Period())
	if err := dashboard.Render(out, snap); err != nil {
		return err
	}
	return refreshErr
}

func runRep(ctx context.Context, out io.Writer, id int64) error {
	ctx, stop := signalContext(ctx)
	defer stop()

	d, err := newDashboard(newLogger())
	if err != nil {
		return err
	}
	if _, err := d.Refresh(ctx, d.Period()); err != nil {
		return err
	}
	rep, ok := d.Rep(id)
	if !ok {
		return fmt.Errorf("rep %d is not among top or bottom performers for %s", id, d.Period())
	}
	return dashboard.RenderRep(out, rep)
}

func runWatch(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, stop := signalContext(ctx)
	defer stop()

	log := newLogger()
	d, err := newDashboard(log, dashboard.WithOnRefresh(func(s dashboard.Snapshot) {
		if err := dashboard.Render(out, s); err != nil {
			log.Error("failed to render dashboard", slog.Any("err", err))
		}
	}))
	if err != nil {
		return err
	}

	periods := make(chan period.Period)
	go readPeriods(ctx, in, out, periods)

	return d.Run(ctx, opts.Interval, periods)
}

// readPeriods читает периоды YYYY-MM построчно и передаёт их в цикл обновления.
// Канал periods закрывается по EOF или отмене ctx; чтение из in при этом
// может остаться заблокированным до следующей строки.
func readPeriods(ctx context.Context, in io.Reader, out io.Writer, periods chan<- period.Period) {
	defer close(periods)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}
		p, err := period.Parse(line)
		if err != nil {
			_, _ = fmt.Fprintf(out, "invalid period %q, expected YYYY-MM\n", line)
			continue
		}
		select {
		case periods <- p:
		case <-ctx.Done():
			return
		}
	}
}
