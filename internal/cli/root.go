// Package cli wires the services together and exposes them as cobra
// commands. Without a subcommand the terminal UI starts.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/app"
	"github.com/llehouerou/tunedeck/internal/config"
	"github.com/llehouerou/tunedeck/internal/logger"
	"github.com/llehouerou/tunedeck/internal/mpris"
	"github.com/llehouerou/tunedeck/internal/notify"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/state"
	"github.com/llehouerou/tunedeck/internal/stderr"
)

// options are the persistent flags shared by every command.
type options struct {
	configFile string
	apiURL     string
	statePath  string
}

// env holds what a command needs once config, logging and state are up.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	client *api.Client
	state  *state.Manager
	close  func()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "tunedeck",
		Short:         "Terminal client for the tunedeck music streaming service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: XDG config paths)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "backend URL, overrides the config")
	root.PersistentFlags().StringVar(&opts.statePath, "state", "", "state database path")

	root.AddCommand(
		newLoginCmd(opts),
		newRegisterCmd(opts),
		newUpgradeCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newPasswdCmd(opts),
		newSongsCmd(opts),
		newPlaylistsCmd(opts),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(opts *options) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logger.New(cfg.GetLogConfig())
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	apiCfg := cfg.GetAPIConfig()
	baseURL := apiCfg.BaseURL
	if opts.apiURL != "" {
		baseURL = opts.apiURL
	}
	client, err := api.New(baseURL,
		api.WithTimeout(apiCfg.Timeout()),
		api.WithLogger(log.Named("api")))
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	var st *state.Manager
	if opts.statePath != "" {
		st, err = state.OpenPath(opts.statePath)
	} else {
		st, err = state.Open()
	}
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &env{
		cfg:    cfg,
		log:    log,
		client: client,
		state:  st,
		close: func() {
			if err := st.Close(); err != nil {
				log.Warn("close state", zap.Error(err))
			}
			_ = closeLog()
		},
	}, nil
}

func runTUI(ctx context.Context, opts *options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	playerCfg := e.cfg.GetPlayerConfig()
	p := player.New(
		player.WithLogger(e.log.Named("player")),
		player.WithTimeUpdateInterval(playerCfg.TimeUpdate()))
	svc := playback.New(p,
		playback.WithLogger(e.log.Named("playback")),
		playback.WithVolume(playerCfg.InitialVolume()),
		playback.WithHistorySize(playerCfg.HistorySize))
	defer func() {
		_ = svc.Close()
		_ = p.Close()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.log.Warn("playback loop stopped", zap.Error(err))
		}
	}()

	m, err := app.New(ctx, app.Deps{
		API:      e.client,
		Playback: svc,
		State:    e.state,
		Logger:   e.log.Named("app"),
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	if e.cfg.NotificationsEnabled() {
		startNotifications(ctx, svc, e.log)
	}
	if e.cfg.MPRISEnabled() {
		adapter, err := mpris.New(svc, currentEntitlement(ctx, e.state))
		if err != nil {
			e.log.Warn("mpris unavailable", zap.Error(err))
		} else {
			defer func() { _ = adapter.Close() }()
		}
	}

	if restore, err := stderr.Capture(e.log.Named("stderr")); err != nil {
		e.log.Warn("stderr capture unavailable", zap.Error(err))
	} else {
		defer restore()
	}

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := prog.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Shutdown(context.Background())
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func startNotifications(ctx context.Context, svc playback.Service, log *zap.Logger) {
	n, err := notify.New()
	if err != nil {
		log.Warn("notifications unavailable", zap.Error(err))
		return
	}
	covers := mpris.NewCoverCache(mpris.DefaultCoverDir(), nil)
	tn := notify.NewTrackNotifier(n, covers, log.Named("notify"))
	go tn.Watch(ctx, svc.Subscribe())
}

// currentEntitlement reads the stored session on every call so media keys
// follow sign-in and sign-out done from another terminal.
func currentEntitlement(ctx context.Context, st state.Interface) func() playback.Entitlement {
	return func() playback.Entitlement {
		s, err := st.Session(ctx)
		if err != nil || s == nil {
			return playback.Entitlement{}
		}
		return playback.Entitlement{UserID: s.UserID, Premium: s.Premium}
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
