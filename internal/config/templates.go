package config

import (
	"fmt"
	"os"
)

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(daemonTemplate), 0o600)
}

const daemonTemplate = `name = "xclockd"
# Empty bus picks the first I2C bus the host exposes.
bus = ""
i2c_addr = 0x60
# sim replaces the bus with an in-memory register file.
sim = false
admin_addr = ":9600"
cors_origins = ["http://localhost:3000"]
log_level = "info"
`
