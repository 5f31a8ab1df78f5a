package config

import (
	"fmt"
	"os"
)

func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `# 0 disables the limit.
max_payload_bytes = 8388608
max_length_digits = 20
read_buffer_bytes = 4096

listen_addr = "127.0.0.1:7979"
dial_addr = "127.0.0.1:7979"
# empty disables the /metrics listener
metrics_addr = ""

log_level = "info"
`
