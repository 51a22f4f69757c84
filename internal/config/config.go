package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "novatask.db"
	DefaultLogName        = "novatask.log"

	appDirName = "novatask"
	envConfig  = "NOVATASK_CONFIG"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Edit          string `toml:"edit"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
	Search        string `toml:"search"`
	NewProject    string `toml:"new_project"`
	Notifications string `toml:"notifications"`
	CycleSort     string `toml:"cycle_sort"`
	CyclePriority string `toml:"cycle_priority_filter"`
	CycleStatus   string `toml:"cycle_status_filter"`
	CycleProject  string `toml:"cycle_project_filter"`
	Theme         string `toml:"theme"`
	ViewMode      string `toml:"view_mode"`
}

type Config struct {
	DBPath      string `toml:"db_path"`
	LogPath     string `toml:"log_path"`
	Theme       string `toml:"theme"`
	DefaultView string `toml:"default_view"`
	DefaultSort string `toml:"default_sort"`
	Keys        Keymap `toml:"keys"`
}

// ResolveConfigPath picks the config file location: the NOVATASK_CONFIG
// env var when set, else config.toml under the user config dir, else
// the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing the defaults there
// first if no file exists yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(filepath.Dir(path), DefaultLogName)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:      filepath.Join(dir, DefaultDBName),
		LogPath:     filepath.Join(dir, DefaultLogName),
		Theme:       "light",
		DefaultView: "dashboard",
		DefaultSort: "dueDate",
		Keys: Keymap{
			Quit:          "q",
			Add:           "a",
			Up:            "k",
			Down:          "j",
			Toggle:        " ",
			Delete:        "d",
			Edit:          "e",
			Confirm:       "enter",
			Cancel:        "esc",
			Search:        "/",
			NewProject:    "P",
			Notifications: "n",
			CycleSort:     "s",
			CyclePriority: "p",
			CycleStatus:   "f",
			CycleProject:  "g",
			Theme:         "t",
			ViewMode:      "v",
		},
	}
}
