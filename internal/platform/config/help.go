// internal/platform/config/help.go
package config

import (
	"fmt"
	"os"
)

const helpText = `
Noesis - Research Pipeline Orchestrator

USAGE:
  noesis -t <topic> [options]

CORE OPTIONS:
  -t, --topic string        Research topic (required unless --check)
  -c, --check               Run tool-server diagnostics and exit
  -T, --timeout int         Pipeline timeout in seconds, 0=none (default: 300)
  -o, --artifacts string    Artifact directory (default: "noesis_out")

PIPELINE OPTIONS:
  --pipeline string         Pipeline command line (default: "python main.py")
                            The topic is appended as the only positional arg.

SERVER OPTIONS:
  -s, --servers string      YAML file with tool-server descriptors
  --srv.search              Enable the search server (default: true)
  --srv.image               Enable the image server (default: true)
  --srv.filesystem          Enable the filesystem server (default: false)

OUTPUT OPTIONS:
  -q, --quiet               Plain output, no terminal styling

INFO:
  -v, --version             Print version information and exit
  -h, --help                Show this help message

ENVIRONMENT:
  NOESIS_TOPIC, NOESIS_PIPELINE, NOESIS_PIPELINE_TIMEOUT,
  NOESIS_PIPELINE_DIR, NOESIS_PROBE_TIMEOUT, NOESIS_ARTIFACT_DIR,
  NOESIS_SERVERS_FILE, NOESIS_SERVER_<NAME>_ENABLED, NOESIS_LOG_LEVEL

EXAMPLES:
  Research a topic:
    noesis -t "photosynthesis"

  Diagnostics only:
    noesis --check

  Custom server set:
    noesis -t "solar adoption" -s servers.yaml
`

// PrintHelp writes the help text to stderr.
func PrintHelp() {
	fmt.Fprint(os.Stderr, helpText)
}
