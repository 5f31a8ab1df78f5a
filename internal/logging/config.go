package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "NETSTRING_LOG_LEVEL"
	EnvLogTimestamp = "NETSTRING_LOG_TIMESTAMP"
	EnvLogNoColor   = "NETSTRING_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Settings is the resolved logger configuration.
type Settings struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
}

var (
	configureOnce sync.Once
	mu            sync.RWMutex
	current       Settings
)

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure applies profile defaults and env overrides once per process.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := DefaultSettings(profile)
		ApplyEnvOverrides(&cfg)
		apply(cfg)
	})
}

func DefaultSettings(profile Profile) Settings {
	switch profile {
	case ProfileTest:
		return Settings{Level: zerolog.DebugLevel, Timestamp: false}
	default:
		return Settings{Level: zerolog.InfoLevel, Timestamp: true}
	}
}

func ApplyEnvOverrides(cfg *Settings) {
	if lvl, ok := EnvLevel(); ok {
		cfg.Level = lvl
	}
	if v, ok := envBool(EnvLogTimestamp); ok {
		cfg.Timestamp = v
	}
	if v, ok := envBool(EnvLogNoColor); ok {
		cfg.NoColor = v
	}
}

// EnvLevel returns the level named by NETSTRING_LOG_LEVEL, if valid.
func EnvLevel() (zerolog.Level, bool) {
	return ParseLevel(os.Getenv(EnvLogLevel))
}

// SetLevel overrides the global level after Configure. Unknown names are
// ignored and reported as false.
func SetLevel(raw string) bool {
	lvl, ok := ParseLevel(raw)
	if !ok {
		return false
	}
	setLevel(lvl)
	return true
}

// ApplyLevel sets the global level with env < file < flag precedence. Empty
// file and flag values keep the env or profile level.
func ApplyLevel(fileLevel, flagLevel string) error {
	if lvl, ok := EnvLevel(); ok {
		setLevel(lvl)
	}
	for _, raw := range []string{fileLevel, flagLevel} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if !SetLevel(raw) {
			return fmt.Errorf("unknown log level %q", raw)
		}
	}
	return nil
}

func setLevel(lvl zerolog.Level) {
	mu.Lock()
	current.Level = lvl
	mu.Unlock()
	zerolog.SetGlobalLevel(lvl)
}

func apply(cfg Settings) {
	mu.Lock()
	current = cfg
	mu.Unlock()
	zerolog.SetGlobalLevel(cfg.Level)
	log.Logger = New("netstring")
}

// New returns a console logger tagged with app.
func New(app string) zerolog.Logger {
	return NewWithWriter(os.Stderr, app)
}

func NewWithWriter(out io.Writer, app string) zerolog.Logger {
	mu.RLock()
	cfg := current
	mu.RUnlock()

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}
	ctx := zerolog.New(output).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", app).Logger()
}

var levelAliases = map[string]zerolog.Level{
	"diagnostics": zerolog.TraceLevel,
	"warning":     zerolog.WarnLevel,
	"disable":     zerolog.Disabled,
	"off":         zerolog.Disabled,
	"none":        zerolog.Disabled,
	"inactive":    zerolog.Disabled,
}

// ParseLevel accepts zerolog level names plus the aliases above.
func ParseLevel(raw string) (zerolog.Level, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return zerolog.InfoLevel, false
	}
	if lvl, ok := levelAliases[name]; ok {
		return lvl, true
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return lvl, true
}

func envBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
