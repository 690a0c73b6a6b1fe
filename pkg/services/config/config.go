package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries the fixed identifiers of the one report/dataset/visual this
// tool knows how to query, plus the endpoints and per-call timeouts.
type Config struct {
	Cluster     string `mapstructure:"cluster"`
	ReportID    string `mapstructure:"report_id"`
	GroupID     string `mapstructure:"group_id"`
	DatasetID   string `mapstructure:"dataset_id"`
	VisualID    string `mapstructure:"visual_id"`
	ModelID     int64  `mapstructure:"model_id"`
	AuthRoute   string `mapstructure:"auth_route"`
	QESEndpoint string `mapstructure:"qes_endpoint"`

	TokenTimeout    time.Duration `mapstructure:"token_timeout"`
	MetadataTimeout time.Duration `mapstructure:"metadata_timeout"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		Cluster:   "https://wabi-south-central-us-redirect.analysis.windows.net",
		ReportID:  "36f8f9aa-cf5a-4bd2-b09f-87b1b06ac1eb",
		GroupID:   "11411183-c06e-4690-9537-67a40c1df2ca",
		DatasetID: "0515b379-fdb6-4d08-9010-0028e146a8ad",
		VisualID:  "d56ab5ab6a1f2e4348e5",
		ModelID:   6878420,
		AuthRoute: "https://63p7r2qck2.execute-api.us-east-1.amazonaws.com/Prod/token",
		QESEndpoint: "https://950ea744264a460d9034a49e3a94ca63.pbidedicated.windows.net" +
			"/webapi/capacities/950EA744-264A-460D-9034-A49E3A94CA63" +
			"/workloads/QES/QueryExecutionService/automatic/public/query",
		TokenTimeout:    60 * time.Second,
		MetadataTimeout: 60 * time.Second,
		QueryTimeout:    120 * time.Second,
	}
}

// Load returns the default configuration overridden by the optional config
// file at path and by PRICE_ATLAS_* environment variables.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetEnvPrefix("price_atlas")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("cluster", def.Cluster)
	v.SetDefault("report_id", def.ReportID)
	v.SetDefault("group_id", def.GroupID)
	v.SetDefault("dataset_id", def.DatasetID)
	v.SetDefault("visual_id", def.VisualID)
	v.SetDefault("model_id", def.ModelID)
	v.SetDefault("auth_route", def.AuthRoute)
	v.SetDefault("qes_endpoint", def.QESEndpoint)
	v.SetDefault("token_timeout", def.TokenTimeout)
	v.SetDefault("metadata_timeout", def.MetadataTimeout)
	v.SetDefault("query_timeout", def.QueryTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// TokenURL assembles the token-issuance URL for the configured group/report.
func (c *Config) TokenURL() string {
	return fmt.Sprintf("%s/%s/%s", c.AuthRoute, c.GroupID, c.ReportID)
}
