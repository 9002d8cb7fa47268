package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string
	AppName  string

	SecretKey    string
	RollbarToken string

	Server struct {
		Host               string
		Port               string
		AllowedOrigin      string
		JWTExpirationDelta time.Duration
	}

	Database struct {
		URI  string
		Name string
	}

	Cloudinary struct {
		CloudName string
		APIKey    string
		APISecret string
		Folder    string
	}
}

func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// LoadConfig loads the app configuration from the environment
// (and an optional .env file), falling back on dev defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Shule")
	v.SetDefault("secretKey", "w#2qd)ej$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("host", "")
	v.SetDefault("port", "8000")
	v.SetDefault("allowedOrigin", "http://localhost:5173")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("databaseUri", "mongodb://localhost:27017")
	v.SetDefault("databaseName", "shule")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.SetEnvPrefix(env)
	v.AutomaticEnv()

	conf := new(Config)
	conf.Env = env
	conf.Debug = v.GetBool("debug")
	conf.TestMode = v.GetBool("testMode")
	conf.AppName = v.GetString("appName")
	conf.SecretKey = v.GetString("secretKey")
	conf.RollbarToken = v.GetString("rollbarToken")
	conf.Server.Host = v.GetString("host")
	conf.Server.Port = v.GetString("port")
	conf.Server.AllowedOrigin = v.GetString("allowedOrigin")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Database.URI = v.GetString("databaseUri")
	conf.Database.Name = v.GetString("databaseName")
	conf.Cloudinary.CloudName = v.GetString("cloudinaryCloudName")
	conf.Cloudinary.APIKey = v.GetString("cloudinaryApiKey")
	conf.Cloudinary.APISecret = v.GetString("cloudinaryApiSecret")
	conf.Cloudinary.Folder = v.GetString("cloudinaryFolder")
	return conf
}
