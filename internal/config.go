package internal

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mahlburgc/lorabridge/internal/radio"
)

type Config struct {
	Params     radio.Params
	ConfigFile string
}

// The factory channel settings. Both bridge modules of a link must carry
// the same parameters, otherwise they only ever see timeouts.
var defaultParams = radio.Params{
	Frequency:       868500000,
	SpreadingFactor: 7,
	Bandwidth:       7,
	CodingRate:      1,
	SyncWord:        18,
}

// Setup / load the lorabridge configuration.
// The config file holds the radio channel parameters as key=value lines;
// a missing file means factory defaults.
func GetConfig() Config {
	var config Config

	homedir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}

	configDir := homedir + "/.config/lorabridge/"
	config.ConfigFile = configDir + "radio.conf"

	err = os.MkdirAll(configDir, os.ModePerm)
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(config.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			data = nil
		} else {
			log.Fatal(err)
		}
	}

	config.Params, err = parseParams(data)
	if err != nil {
		log.Fatal(err)
	}
	return config
}

// parseParams overlays key=value lines onto the factory defaults.
// Empty lines and '#' comments are skipped.
func parseParams(data []byte) (radio.Params, error) {
	params := defaultParams

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return params, fmt.Errorf("config line %q: missing '='", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return params, fmt.Errorf("config %s: %w", key, err)
		}

		switch key {
		case "frequency":
			params.Frequency = uint32(n)
		case "spreading_factor":
			params.SpreadingFactor = uint8(n)
		case "bandwidth":
			params.Bandwidth = uint8(n)
		case "coding_rate":
			params.CodingRate = uint8(n)
		case "sync_word":
			params.SyncWord = uint8(n)
		default:
			return params, fmt.Errorf("config: unknown key %q", key)
		}
	}
	return params, nil
}
