package nspv

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/stellar/go/support/errors"
	"github.com/stellar/go/support/log"
)

const defaultEnvFile = ".env"

// Config holds the settings a Client can be built from. Every field can come
// from a command line flag or from the environment, and the environment may
// be seeded from a dotenv file.
type Config struct {
	EnvFile       string        `long:"envfile" env:"NSPV_ENVFILE" default:".env" description:"Dotenv file read before the environment"`
	RPCHost       string        `long:"rpchost" env:"NSPV_RPCHOST" default:"127.0.0.1" description:"Daemon RPC host"`
	RPCPort       int           `long:"rpcport" env:"NSPV_RPCPORT" default:"7771" description:"Daemon RPC port"`
	RPCUser       string        `long:"rpcuser" env:"NSPV_RPCUSER" description:"Username for RPC basic auth"`
	RPCPass       string        `long:"rpcpass" env:"NSPV_RPCPASS" default-mask:"-" description:"Password for RPC basic auth"`
	Timeout       time.Duration `long:"timeout" env:"NSPV_TIMEOUT" default:"30s" description:"Per call timeout, 0 to disable"`
	TxProofMethod string        `long:"txproofmethod" env:"NSPV_TXPROOFMETHOD" default:"spentinfo" description:"Daemon method used for tx proofs"`
	Strict        bool          `long:"strict" env:"NSPV_STRICT" description:"Check key, address, txid and hex formats before calling the daemon"`
	Debug         bool          `long:"debug" env:"NSPV_DEBUG" description:"Log every RPC call"`
}

// LoadConfig reads a Config from args and the environment. The dotenv file
// named by --envfile (default .env) is loaded first if it exists; variables
// already set in the environment win over it.
func LoadConfig(args []string) (*Config, error) {
	preCfg := Config{}
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown)
	if _, err := preParser.ParseArgs(args); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := loadEnvFile(preCfg.EnvFile); err != nil {
		return nil, err
	}

	cfg := Config{}
	parser := flags.NewParser(&cfg, flags.None)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && path == defaultEnvFile {
			return nil
		}
		return errors.Wrapf(err, "reading env file %s", path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading env file %s", path)
	}
	return nil
}

func (cfg *Config) validate() error {
	if cfg.RPCPort <= 0 || cfg.RPCPort > 65535 {
		return errors.Errorf("rpcport %d out of range", cfg.RPCPort)
	}
	if cfg.Timeout < 0 {
		return errors.Errorf("timeout %s is negative", cfg.Timeout)
	}
	return nil
}

// NewClientFromConfig builds a Client from cfg. opts are applied after the
// config and override it.
func NewClientFromConfig(cfg *Config, opts ...Option) *Client {
	l := log.New().WithField("component", "nspv")
	if cfg.Debug {
		l.SetLevel(logrus.DebugLevel)
	}
	base := []Option{
		WithHost(cfg.RPCHost),
		WithPort(cfg.RPCPort),
		WithCredentials(cfg.RPCUser, cfg.RPCPass),
		WithTimeout(cfg.Timeout),
		WithTxProofMethod(cfg.TxProofMethod),
		WithLogger(l),
	}
	if cfg.Strict {
		base = append(base, WithStrictValidation())
	}
	return NewClient(append(base, opts...)...)
}
