package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tzneal/gridref"
)

// Config holds the configuration settings for the gridconv command.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Precision: MGRS digits per axis, from 1 (10km) to 5 (1m).
// - Ellipsoid: The reference ellipsoid used for every conversion.
type Config struct {
	Env           string            // Env is the current environment: local, development, production.
	Precision     int               // Precision is the number of MGRS digits per axis.
	EllipsoidName string            // EllipsoidName is the configured ellipsoid name.
	Ellipsoid     gridref.Ellipsoid // Ellipsoid is the resolved reference ellipsoid.
}

// MustLoad loads the configuration from the environment, and from a .env file
// when one is present, and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load()

	precision, err := strconv.Atoi(setDefaultEnv("GRIDCONV_PRECISION", "5"))
	if err != nil || precision < 1 || precision > 5 {
		panic("failed to parse precision from configuration, must be an integer from 1 to 5")
	}

	name := setDefaultEnv("GRIDCONV_ELLIPSOID", "wgs84")
	ellipsoid, err := gridref.EllipsoidByName(name)
	if err != nil {
		panic("failed to parse ellipsoid from configuration, must be wgs84 or grs80")
	}

	return &Config{
		Env:           setDefaultEnv("GRIDCONV_ENV", "production"),
		Precision:     precision,
		EllipsoidName: name,
		Ellipsoid:     ellipsoid,
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
