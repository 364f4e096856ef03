// Package config carga la configuración YAML del servicio con overrides por
// variables de entorno para despliegues containerizados.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		Driver string `yaml:"driver"` // memory | postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`

	Revocation struct {
		Backend string `yaml:"backend"` // memory | redis
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"revocation"`

	Token struct {
		Issuer string        `yaml:"issuer"`
		TTL    time.Duration `yaml:"ttl"`
		// SecretEnv nombra la variable de entorno con la clave HMAC;
		// el secreto nunca vive en el YAML.
		SecretEnv string `yaml:"secret_env"`
	} `yaml:"token"`

	Agent struct {
		ID string `yaml:"id"`
	} `yaml:"agent"`
}

// Load lee el YAML, aplica defaults y luego overrides de entorno.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Revocation.Backend == "" {
		c.Revocation.Backend = "memory"
	}
	if c.Token.Issuer == "" {
		c.Token.Issuer = "ethos"
	}
	if c.Token.TTL == 0 {
		c.Token.TTL = time.Hour
	}
	if c.Token.SecretEnv == "" {
		c.Token.SecretEnv = "TOKEN_SIGNING_KEY"
	}
	if c.Agent.ID == "" {
		c.Agent.ID = "ethical_consumption_agent"
	}

	// env overrides
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("REVOCATION_BACKEND"); v != "" {
		c.Revocation.Backend = v
	}
	if v := os.Getenv("REVOCATION_REDIS_ADDR"); v != "" {
		c.Revocation.Redis.Addr = v
	}
	if v := os.Getenv("REVOCATION_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Revocation.Redis.DB = n
		}
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Token.TTL = d
		}
	}

	return &c, nil
}

// TokenSecret lee la clave HMAC desde la variable de entorno configurada.
func (c *Config) TokenSecret() []byte {
	return []byte(os.Getenv(c.Token.SecretEnv))
}
