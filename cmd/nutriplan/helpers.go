package nutriplan

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nutriplan/nutriplan-cli/internal/app"
	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/store"
)

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		defaultPath, err := app.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return config.Load(path)
}

func resolveDBPath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

// withStore opens the store for one command invocation and closes it on the
// way out.
func withStore(run func(*store.Store, *config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	slog.Debug("opening store", "path", path)

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return run(st, cfg)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
