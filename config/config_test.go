package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ConfigTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type ConfigTestSuite struct{}

func (s *ConfigTestSuite) TestDefaults(c *gc.C) {
	cfg, err := Load(viper.New())
	c.Assert(err, gc.IsNil)
	c.Assert(cfg, gc.DeepEquals, Config{
		Damping:    0.85,
		Samples:    10000,
		Threshold:  0.001,
		Workers:    4,
		Format:     FormatText,
		ListenAddr: ":8080",
		LogLevel:   "info",
	})
	c.Assert(cfg.Level(), gc.Equals, logrus.InfoLevel)

	ranking := cfg.Ranking(nil)
	c.Assert(ranking.DampingFactor, gc.Equals, 0.85)
	c.Assert(ranking.SampleCount, gc.Equals, 10000)
	c.Assert(ranking.ConvergenceThreshold, gc.Equals, 0.001)
}

func (s *ConfigTestSuite) TestEnvOverrides(c *gc.C) {
	for key, val := range map[string]string{
		"PAGERANK_DAMPING":         "0.5",
		"PAGERANK_SAMPLES":         "42",
		"PAGERANK_FORMAT":          "json",
		"PAGERANK_UPDATE_INTERVAL": "1m",
	} {
		c.Assert(os.Setenv(key, val), gc.IsNil)
		defer os.Unsetenv(key)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg, err := Load(v)
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.Damping, gc.Equals, 0.5)
	c.Assert(cfg.Samples, gc.Equals, 42)
	c.Assert(cfg.Format, gc.Equals, FormatJSON)
	c.Assert(cfg.UpdateInterval, gc.Equals, time.Minute)
}

func (s *ConfigTestSuite) TestConfigFile(c *gc.C) {
	path := filepath.Join(c.MkDir(), ".pagerank.yaml")
	err := os.WriteFile(path, []byte("dir: corpus0\nseed: 7\nmax_passes: 100\nlog_level: debug\n"), 0o644)
	c.Assert(err, gc.IsNil)

	v := viper.New()
	v.SetConfigFile(path)
	c.Assert(v.ReadInConfig(), gc.IsNil)

	cfg, err := Load(v)
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.Dir, gc.Equals, "corpus0")
	c.Assert(cfg.Seed, gc.Equals, int64(7))
	c.Assert(cfg.MaxPasses, gc.Equals, 100)
	c.Assert(cfg.Level(), gc.Equals, logrus.DebugLevel)
}

func (s *ConfigTestSuite) TestValidation(c *gc.C) {
	v := viper.New()
	v.Set("damping", 1.0)
	v.Set("samples", 0)
	v.Set("threshold", -1)
	v.Set("max_passes", -1)
	v.Set("workers", 0)
	v.Set("format", "xml")
	v.Set("log_level", "loud")

	_, err := Load(v)
	c.Assert(err, gc.ErrorMatches, `(?s)config: validation failed: 7 errors occurred:.*damping.*samples.*threshold.*max_passes.*workers.*"xml".*log_level.*`)
}
