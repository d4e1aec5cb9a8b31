// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"noesis/internal/core/domain"
	"noesis/internal/platform/errors"
)

type Config struct {
	// Core
	Topic        string
	CheckOnly    bool
	PrintVersion bool

	// Pipeline is the child-process launch spec for the agent pipeline
	Pipeline Pipeline

	// Artifacts
	ArtifactDir string

	// Servers are the configured tool-server descriptors, in file order.
	// Defaults mirror the stock pipeline: a stdio search server, a stdio
	// image server, and an npx filesystem server that ships disabled.
	Servers []domain.ToolServerDescriptor

	// ServersFile is an optional YAML file overriding the default servers
	ServersFile string

	// Output
	Quiet bool
}

type Pipeline struct {
	// Command is the argv of the pipeline executable; the topic is
	// appended as the sole positional argument at invoke time
	Command []string

	// TimeoutS bounds one run in seconds (0 = no timeout)
	TimeoutS int

	// WorkDir is the working directory of the child process ("" = inherit)
	WorkDir string

	// ProbeTimeoutS bounds one tool-server health probe in seconds
	ProbeTimeoutS int
}

// serversFile is the YAML shape of the optional servers file.
type serversFile struct {
	Servers []domain.ToolServerDescriptor `yaml:"servers"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Pipeline: Pipeline{
			Command:       []string{"python", "main.py"},
			TimeoutS:      300,
			ProbeTimeoutS: 10,
		},
		ArtifactDir: "noesis_out",
		ServersFile: "",
		Servers: []domain.ToolServerDescriptor{
			{
				Name:       "search",
				Capability: domain.CapabilitySearch,
				Command:    []string{"python", "servers/search_server.py"},
				Enabled:    true,
			},
			{
				Name:       "image",
				Capability: domain.CapabilityImage,
				Command:    []string{"python", "servers/image_server.py"},
				Enabled:    true,
			},
			{
				// Registered but off: the stock pipeline only enables it
				// when a recent Node.js runtime is available.
				Name:       "filesystem",
				Capability: domain.CapabilityFilesystem,
				Command:    []string{"npx", "-y", "@modelcontextprotocol/server-filesystem", "."},
				Enabled:    false,
			},
		},
	}
}

// Load builds the configuration: defaults -> servers file -> ENV -> flags
// (flags win). Invalid or duplicate server descriptors are Configuration
// errors and fail the load.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	loadFromEnv(&cfg)

	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	if cfg.ServersFile != "" {
		if err := loadServersFile(&cfg, cfg.ServersFile); err != nil {
			return cfg, err
		}
	}

	normalize(&cfg)

	if err := validateServers(cfg.Servers); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadServersFile replaces the server list with the file's contents.
func loadServersFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrConfiguration, "reading servers file %s: %v", path, err)
	}

	var sf serversFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return errors.Wrapf(errors.ErrConfiguration, "parsing servers file %s: %v", path, err)
	}

	if len(sf.Servers) == 0 {
		return errors.Wrapf(errors.ErrConfiguration, "servers file %s declares no servers", path)
	}

	cfg.Servers = sf.Servers
	return nil
}

// loadFromEnv loads configuration from environment variables.
func loadFromEnv(cfg *Config) {
	if v := getenv("NOESIS_TOPIC", ""); v != "" {
		cfg.Topic = v
	}
	if v := getenv("NOESIS_PIPELINE", ""); v != "" {
		cfg.Pipeline.Command = strings.Fields(v)
	}
	if v := getenv("NOESIS_PIPELINE_TIMEOUT", ""); v != "" {
		cfg.Pipeline.TimeoutS = parseInt(v, cfg.Pipeline.TimeoutS)
	}
	if v := getenv("NOESIS_PIPELINE_DIR", ""); v != "" {
		cfg.Pipeline.WorkDir = v
	}
	if v := getenv("NOESIS_PROBE_TIMEOUT", ""); v != "" {
		cfg.Pipeline.ProbeTimeoutS = parseInt(v, cfg.Pipeline.ProbeTimeoutS)
	}
	if v := getenv("NOESIS_ARTIFACT_DIR", ""); v != "" {
		cfg.ArtifactDir = v
	}
	if v := getenv("NOESIS_SERVERS_FILE", ""); v != "" {
		cfg.ServersFile = v
	}

	// Per-server enable overrides, e.g. NOESIS_SERVER_FILESYSTEM_ENABLED=true
	for i := range cfg.Servers {
		key := fmt.Sprintf("NOESIS_SERVER_%s_ENABLED", strings.ToUpper(cfg.Servers[i].Name))
		if v := getenv(key, ""); v != "" {
			cfg.Servers[i].Enabled = parseBool(v)
		}
	}
}

// loadFromFlags parses CLI flags into cfg.
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("noesis", pflag.ContinueOnError)
	fs.Usage = func() { PrintHelp() }

	fs.StringVarP(&cfg.Topic, "topic", "t", cfg.Topic, "Research topic")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Only run tool-server diagnostics and exit")
	fs.StringVarP(&cfg.ArtifactDir, "artifacts", "o", cfg.ArtifactDir, "Artifact directory")
	fs.IntVarP(&cfg.Pipeline.TimeoutS, "timeout", "T", cfg.Pipeline.TimeoutS, "Pipeline timeout in seconds (0 = none)")
	fs.StringVarP(&cfg.ServersFile, "servers", "s", cfg.ServersFile, "YAML file with tool-server descriptors")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Plain output, no terminal styling")
	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Print version and exit")

	pipelineCmd := fs.String("pipeline", strings.Join(cfg.Pipeline.Command, " "), "Pipeline command line")

	// Per-server enable toggles over the default set
	for i := range cfg.Servers {
		fs.BoolVar(&cfg.Servers[i].Enabled, "srv."+cfg.Servers[i].Name, cfg.Servers[i].Enabled,
			fmt.Sprintf("Enable the %s server", cfg.Servers[i].Name))
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return errors.Wrap(errors.ErrConfiguration, err.Error())
	}

	if fs.Changed("pipeline") {
		cfg.Pipeline.Command = strings.Fields(*pipelineCmd)
	}

	return nil
}

func normalize(c *Config) {
	c.Topic = strings.TrimSpace(c.Topic)
	if c.Pipeline.TimeoutS < 0 {
		c.Pipeline.TimeoutS = 0
	}
	if c.Pipeline.ProbeTimeoutS <= 0 {
		c.Pipeline.ProbeTimeoutS = 10
	}
	if c.ArtifactDir == "" {
		c.ArtifactDir = "noesis_out"
	}
}

// validateServers rejects invalid descriptors and duplicate names.
func validateServers(servers []domain.ToolServerDescriptor) error {
	seen := make(map[string]bool, len(servers))
	for _, d := range servers {
		if err := d.Validate(); err != nil {
			return errors.Wrapf(errors.ErrConfiguration, "server %q: %v", d.Name, err)
		}
		if seen[d.Name] {
			return errors.Wrapf(errors.ErrConfiguration, "server %q: %v", d.Name, domain.ErrDuplicateServer)
		}
		seen[d.Name] = true
	}
	return nil
}

// PipelineTimeout returns the run timeout as a duration (0 = no timeout).
func (c Config) PipelineTimeout() time.Duration {
	if c.Pipeline.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Pipeline.TimeoutS) * time.Second
}

// ProbeTimeout returns the per-probe timeout as a duration.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Pipeline.ProbeTimeoutS) * time.Second
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
