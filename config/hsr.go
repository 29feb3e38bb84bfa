package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/Amankrah/ecodish365/hsr"
)

// LoadThresholds builds the per-category scoring tables. An override file
// (YAML or JSON, path from cfgFile or the HSR_THRESHOLDS env var) replaces
// the built-in tables; the bands are validated before use.
func LoadThresholds(cfgFile string) (*hsr.ThresholdSet, error) {
	if cfgFile == "" {
		cfgFile = os.Getenv("HSR_THRESHOLDS")
	}
	if cfgFile == "" {
		return hsr.MustDefaultThresholdSet(), nil
	}

	v := viper.New()
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading thresholds file: %w", err)
	}

	thresholds := hsr.DefaultThresholds()
	if err := v.Unmarshal(&thresholds); err != nil {
		return nil, fmt.Errorf("error parsing thresholds file: %w", err)
	}

	set, err := hsr.NewThresholdSet(thresholds)
	if err != nil {
		return nil, fmt.Errorf("invalid thresholds in %s: %w", cfgFile, err)
	}
	log.Printf("Loaded HSR thresholds from %s", cfgFile)
	return set, nil
}
