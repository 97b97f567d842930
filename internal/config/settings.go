package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/handiism/tocadiscos/internal/audio"
)

// EnvPrefix prefixes every environment override, e.g. TOCADISCOS_DATA_DIR.
const EnvPrefix = "TOCADISCOS"

// Settings holds all configuration options.
type Settings struct {
	// Table locations
	DataDir     string `json:"data_dir" mapstructure:"data_dir"`
	ArtistsFile string `json:"artists_file" mapstructure:"artists_file"`
	AlbumsFile  string `json:"albums_file" mapstructure:"albums_file"`
	TracksFile  string `json:"tracks_file" mapstructure:"tracks_file"`
	UsersFile   string `json:"users_file" mapstructure:"users_file"`

	// History
	HistoryDir string `json:"history_dir" mapstructure:"history_dir"`

	// Search index; empty keeps the index in memory
	IndexPath string `json:"index_path" mapstructure:"index_path"`

	// Ingestion
	DefaultRoyaltyPercentage float64 `json:"default_royalty_percentage" mapstructure:"default_royalty_percentage"`

	// Playback
	SongsDir      string   `json:"songs_dir" mapstructure:"songs_dir"`
	PlayerCommand string   `json:"player_command" mapstructure:"player_command"`
	PlayerArgs    []string `json:"player_args" mapstructure:"player_args"`

	// Playlist settings
	PlaylistFormat string `json:"playlist_format" mapstructure:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" mapstructure:"m3u_extended"`

	// Tag settings
	ModifyTags   bool `json:"modify_tags" mapstructure:"modify_tags"`
	CoverMaxSize int  `json:"cover_max_size" mapstructure:"cover_max_size"` // pixels, 0 keeps the original size

	// Logging
	LogLevel  string `json:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" mapstructure:"log_format"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir:     "data",
		ArtistsFile: "authors_table.csv",
		AlbumsFile:  "albums_table.csv",
		TracksFile:  "raw_tracks.csv",
		UsersFile:   "users.csv",

		HistoryDir: filepath.Join("data", "history"),
		IndexPath:  filepath.Join("data", "index.bleve"),

		DefaultRoyaltyPercentage: 10,

		SongsDir:      filepath.Join("data", "songs"),
		PlayerCommand: "ffplay",
		PlayerArgs:    []string{"-nodisp", "-autoexit", "-loglevel", "quiet"},

		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags:   true,
		CoverMaxSize: 1000,

		LogLevel:  "info",
		LogFormat: "auto",
	}
}

// Load reads settings from a JSON file, then applies TOCADISCOS_* environment
// overrides. A missing file yields the defaults plus overrides.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := setDefaults(v, DefaultSettings()); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) && !stderrors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// setDefaults registers every field so environment overrides apply even
// when the key is absent from the file.
func setDefaults(v *viper.Viper, s *Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, value := range fields {
		v.SetDefault(key, value)
	}
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetDataDir moves every data location under dir.
func (s *Settings) SetDataDir(dir string) {
	s.DataDir = dir
	s.HistoryDir = filepath.Join(dir, "history")
	s.IndexPath = filepath.Join(dir, "index.bleve")
	s.SongsDir = filepath.Join(dir, "songs")
}

// Paths holds the resolved locations of the managed files.
type Paths struct {
	Artists string
	Albums  string
	Tracks  string
	Users   string
	History string
	Index   string
	Songs   string
}

// ToPaths resolves table file names against DataDir. Absolute file names are
// kept as given.
func (s *Settings) ToPaths() Paths {
	return Paths{
		Artists: s.resolve(s.ArtistsFile),
		Albums:  s.resolve(s.AlbumsFile),
		Tracks:  s.resolve(s.TracksFile),
		Users:   s.resolve(s.UsersFile),
		History: s.HistoryDir,
		Index:   s.IndexPath,
		Songs:   s.SongsDir,
	}
}

func (s *Settings) resolve(name string) string {
	if filepath.IsAbs(name) || s.DataDir == "" {
		return name
	}
	return filepath.Join(s.DataDir, name)
}

// ToPlaylistFormat converts the playlist setting, defaulting to M3U.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	switch strings.ToLower(s.PlaylistFormat) {
	case "pls":
		return audio.FormatPLS
	case "wpl":
		return audio.FormatWPL
	case "zpl":
		return audio.FormatZPL
	default:
		return audio.FormatM3U
	}
}
