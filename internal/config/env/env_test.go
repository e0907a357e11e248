package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// unsetEnv убирает переменную на время теста
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestNewLadderConfigFromYAML_RepoFile(t *testing.T) {
	cfg, err := NewLadderConfigFromYAML("../../../config.yaml")
	require.NoError(t, err)

	game := cfg.Game()
	require.Len(t, game.Multipliers, 14)
	require.Equal(t, "1500", game.Multipliers[13].String())
	require.Len(t, game.BetSteps, 16)
	require.Equal(t, 2, game.DefaultBetIndex)
	require.Equal(t, "100", game.StartBalance.String())
	require.Equal(t, uint32(123456789), game.PreviewSeed)
	require.Equal(t, 220*time.Millisecond, game.Timings.WinOverlayDelay)
	require.Equal(t, 2200*time.Millisecond, game.Timings.WinOverlayDuration)
	require.Equal(t, 900*time.Millisecond, game.Timings.LossReveal)
	require.Equal(t, 500, cfg.StatsWindow())
	require.Equal(t, "10000", game.MaxDeposit.String())
	require.Equal(t, "999999999999.99", game.MaxBalance.String())
	require.Equal(t, 30*time.Minute, cfg.SessionIdle())
}

func TestNewLadderConfigFromYAML_PartialFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, `
ladder:
  start_balance: "250.50"
  timings:
    loss_reveal: 1s
`)
	cfg, err := NewLadderConfigFromYAML(path)
	require.NoError(t, err)

	game := cfg.Game()
	require.Equal(t, "250.5", game.StartBalance.String())
	require.Equal(t, time.Second, game.Timings.LossReveal)
	require.Equal(t, 220*time.Millisecond, game.Timings.WinOverlayDelay)
	require.Len(t, game.Multipliers, 14)
	require.Equal(t, defaultStatsWindow, cfg.StatsWindow())
	require.Equal(t, defaultSessionIdle, cfg.SessionIdle())
	require.Equal(t, "10000", game.MaxDeposit.String())
}

func TestNewLadderConfigFromYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad amount", "ladder:\n  bet_steps: [\"1\", \"abc\"]\n"},
		{"descending multipliers", "ladder:\n  multipliers: [\"2\", \"1\"]\n  trap_density: [{from: 0, to: 1, traps: 1}]\n"},
		{"density gap", "ladder:\n  trap_density: [{from: 0, to: 4, traps: 1}]\n"},
		{"broken yaml", "ladder: [\n"},
		{"bad max deposit", "ladder:\n  max_deposit: lots\n"},
		{"balance cap below top payout", "ladder:\n  max_balance: \"1000\"\n"},
		{"negative idle", "ladder:\n  session_idle: -1m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLadderConfigFromYAML(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}

	_, err := NewLadderConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewLadderConfig_PathFromEnv(t *testing.T) {
	t.Setenv("LADDER_CONFIG", writeConfig(t, "ladder:\n  window_size: 7\n"))

	cfg, err := NewLadderConfig()
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Game().WindowSize)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("ACCESS_TOKEN", "")
	_, err := NewJWTConfig()
	require.Error(t, err)

	t.Setenv("ACCESS_TOKEN", "secret")
	t.Setenv("ACCESS_TOKEN_DURATION", "5m")
	unsetEnv(t, "REFRESH_TOKEN_DURATION")
	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), cfg.AccessTokenSecretKey())
	require.Equal(t, 5*time.Minute, cfg.AccessTokenDuration())
	require.Equal(t, 720*time.Hour, cfg.RefreshTokenDuration())
}

func TestNewPGConfig(t *testing.T) {
	t.Setenv("PG_DSN", "")
	_, err := NewPGConfig()
	require.Error(t, err)

	t.Setenv("PG_DSN", "postgres://localhost/ladder")
	cfg, err := NewPGConfig()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/ladder", cfg.DSN())
}

func TestNewHTTPAndLogConfigDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "HTTP_SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_DEVELOPMENT"} {
		unsetEnv(t, key)
	}

	httpCfg, err := NewHTTPConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", httpCfg.Address())
	require.Equal(t, 10*time.Second, httpCfg.ShutdownTimeout())

	logCfg, err := NewLogConfig()
	require.NoError(t, err)
	require.Equal(t, "info", logCfg.Level())
	require.False(t, logCfg.Development())
}
