package env

import (
	"fmt"
	"ladder_backend/internal/config"
	"ladder_backend/internal/ladder"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	defaultStatsWindow = 500
	defaultSessionIdle = 30 * time.Minute
)

type ladderPath struct {
	Path string `env:"LADDER_CONFIG" envDefault:"config.yaml"`
}

// ladderFile - секция ladder в config.yaml. Пустые поля берутся из ladder.DefaultConfig.
type ladderFile struct {
	Ladder struct {
		Multipliers     []string `yaml:"multipliers"`
		BetSteps        []string `yaml:"bet_steps"`
		DefaultBetIndex *int     `yaml:"default_bet_index"`
		StartBalance    string   `yaml:"start_balance"`
		MaxDeposit      string   `yaml:"max_deposit"`
		MaxBalance      string   `yaml:"max_balance"`
		PadsPerRow      int      `yaml:"pads_per_row"`
		WindowSize      int      `yaml:"window_size"`
		PreviewSeed     *uint32  `yaml:"preview_seed"`
		TrapDensity     []struct {
			From  int `yaml:"from"`
			To    int `yaml:"to"`
			Traps int `yaml:"traps"`
		} `yaml:"trap_density"`
		Timings struct {
			WinOverlayDelay    *time.Duration `yaml:"win_overlay_delay"`
			WinOverlayDuration *time.Duration `yaml:"win_overlay_duration"`
			LossReveal         *time.Duration `yaml:"loss_reveal"`
			TrapSettle         *time.Duration `yaml:"trap_settle"`
		} `yaml:"timings"`
		StatsWindow int            `yaml:"stats_window"`
		SessionIdle *time.Duration `yaml:"session_idle"`
	} `yaml:"ladder"`
}

type ladderConfig struct {
	game        ladder.Config
	statsWindow int
	sessionIdle time.Duration
}

// NewLadderConfig читает путь к файлу из LADDER_CONFIG
func NewLadderConfig() (config.LadderConfig, error) {
	var p ladderPath
	if err := env.Parse(&p); err != nil {
		return nil, fmt.Errorf("ladder config: %w", err)
	}
	return NewLadderConfigFromYAML(p.Path)
}

// NewLadderConfigFromYAML загружает таблицы игры из YAML и проверяет их
func NewLadderConfigFromYAML(path string) (config.LadderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ladder config: %w", err)
	}

	var f ladderFile
	if err = yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse ladder config: %w", err)
	}

	src := f.Ladder
	cfg := ladder.DefaultConfig()

	if len(src.Multipliers) > 0 {
		if cfg.Multipliers, err = parseAmounts("multipliers", src.Multipliers); err != nil {
			return nil, err
		}
	}
	if len(src.BetSteps) > 0 {
		if cfg.BetSteps, err = parseAmounts("bet_steps", src.BetSteps); err != nil {
			return nil, err
		}
	}
	if src.DefaultBetIndex != nil {
		cfg.DefaultBetIndex = *src.DefaultBetIndex
	}
	if src.StartBalance != "" {
		if cfg.StartBalance, err = decimal.NewFromString(src.StartBalance); err != nil {
			return nil, fmt.Errorf("start_balance: %w", err)
		}
	}
	if src.MaxDeposit != "" {
		if cfg.MaxDeposit, err = decimal.NewFromString(src.MaxDeposit); err != nil {
			return nil, fmt.Errorf("max_deposit: %w", err)
		}
	}
	if src.MaxBalance != "" {
		if cfg.MaxBalance, err = decimal.NewFromString(src.MaxBalance); err != nil {
			return nil, fmt.Errorf("max_balance: %w", err)
		}
	}
	if src.PadsPerRow > 0 {
		cfg.PadsPerRow = src.PadsPerRow
	}
	if src.WindowSize > 0 {
		cfg.WindowSize = src.WindowSize
	}
	if src.PreviewSeed != nil {
		cfg.PreviewSeed = *src.PreviewSeed
	}
	if len(src.TrapDensity) > 0 {
		cfg.TrapDensity = make([]ladder.TrapBand, 0, len(src.TrapDensity))
		for _, b := range src.TrapDensity {
			cfg.TrapDensity = append(cfg.TrapDensity, ladder.TrapBand{FromRow: b.From, ToRow: b.To, Traps: b.Traps})
		}
	}

	t := src.Timings
	setDuration(&cfg.Timings.WinOverlayDelay, t.WinOverlayDelay)
	setDuration(&cfg.Timings.WinOverlayDuration, t.WinOverlayDuration)
	setDuration(&cfg.Timings.LossReveal, t.LossReveal)
	setDuration(&cfg.Timings.TrapSettle, t.TrapSettle)

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ladder config: %w", err)
	}

	window := src.StatsWindow
	if window <= 0 {
		window = defaultStatsWindow
	}

	idle := defaultSessionIdle
	setDuration(&idle, src.SessionIdle)
	if idle < 0 {
		return nil, fmt.Errorf("invalid ladder config: session_idle must not be negative, got %s", idle)
	}

	return &ladderConfig{game: cfg, statsWindow: window, sessionIdle: idle}, nil
}

func (c *ladderConfig) Game() ladder.Config {
	return c.game
}

func (c *ladderConfig) StatsWindow() int {
	return c.statsWindow
}

func (c *ladderConfig) SessionIdle() time.Duration {
	return c.sessionIdle
}

func parseAmounts(field string, values []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out[i] = d
	}
	return out, nil
}

func setDuration(dst *time.Duration, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}
