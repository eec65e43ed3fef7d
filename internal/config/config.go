package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	HTTP     HTTPConfig               `mapstructure:"http"`
	Gin      GinConfig                `mapstructure:"gin"`
	CORS     CORSConfig               `mapstructure:"cors"`
	Log      LogConfig                `mapstructure:"log"`
	Paths    PathsConfig              `mapstructure:"paths"`
	Fonts    FontsConfig              `mapstructure:"fonts"`
	Contests map[string]ContestConfig `mapstructure:"contests"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Environment string `mapstructure:"environment"`
}

// PathsConfig holds file locations. Template, logo, QR and font paths that
// are relative are resolved against Assets; Photos and Log are used as given
// so the log keeps relative photo paths.
type PathsConfig struct {
	Assets   string `mapstructure:"assets"`
	Template string `mapstructure:"template"`
	Logo     string `mapstructure:"logo"`
	Photos   string `mapstructure:"photos"`
	Log      string `mapstructure:"log"`
}

type FontsConfig struct {
	Bold        string  `mapstructure:"bold"`
	BoldSize    float64 `mapstructure:"bold_size"`
	Regular     string  `mapstructure:"regular"`
	RegularSize float64 `mapstructure:"regular_size"`
}

type ContestConfig struct {
	QR         string `mapstructure:"qr"`
	PaymentURI string `mapstructure:"payment_uri"`
}

const envPrefix = "IDCARD"

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.environment", "development")

	v.SetDefault("paths.assets", ".")
	v.SetDefault("paths.template", "id.png")
	v.SetDefault("paths.logo", "kreeda.png")
	v.SetDefault("paths.photos", "photos")
	v.SetDefault("paths.log", "id_card_data.csv")

	v.SetDefault("fonts.bold", "arialbd.ttf")
	v.SetDefault("fonts.bold_size", 20)
	v.SetDefault("fonts.regular", "arial.ttf")
	v.SetDefault("fonts.regular_size", 16)

	v.SetDefault("contests.football.qr", "football_qr.jpg")
	v.SetDefault("contests.football.payment_uri", "")
	v.SetDefault("contests.volleyball.qr", "volleyball_qr.jpg")
	v.SetDefault("contests.volleyball.payment_uri", "")
	v.SetDefault("contests.cricket.qr", "cricket_qr.jpg")
	v.SetDefault("contests.cricket.payment_uri", "")
}

// Load reads defaults, then the optional YAML file at path, then IDCARD_*
// environment variables (IDCARD_HTTP_PORT, IDCARD_PATHS_TEMPLATE, ...).
// PORT, when set, overrides the HTTP port.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s -> %w", path, err)
			}
		}
	}

	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unmarshal config -> %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		conf.HTTP.Port = port
	}
	return &conf, nil
}

// Asset resolves name against the assets directory unless it is absolute.
func (p PathsConfig) Asset(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Assets, name)
}
