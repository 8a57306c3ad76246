// Package config loads the network profiles a wallet derives accounts for.
package config

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
	"github.com/linlinbupt123-crypto/wallet_core/curve/ed25519"
	"github.com/linlinbupt123-crypto/wallet_core/curve/secp256k1"
)

// Address kinds a network can render.
const (
	AddressBTC = "btc"
	AddressETH = "eth"
)

var log = zerolog.Nop()

func UseLogger(logger zerolog.Logger) {
	log = logger.With().Str("pkg", "config").Logger()
}

type Config struct {
	Networks []Network `mapstructure:"networks"`
}

// Network describes one (chain x curve) pair.
type Network struct {
	Name           string `mapstructure:"name"`
	Curve          string `mapstructure:"curve"`
	CoinType       uint32 `mapstructure:"coin_type"`
	Address        string `mapstructure:"address"`
	MainNet        bool   `mapstructure:"main_net"`
	PrivateVersion string `mapstructure:"private_version"`
	PublicVersion  string `mapstructure:"public_version"`
}

// Versions decodes the version tags. Call Validate first.
func (n Network) Versions() (private, public bip32.Version, err error) {
	if private, err = bip32.ParseVersion(n.PrivateVersion); err != nil {
		return private, public, errors.Wrapf(err, "network %s: private_version", n.Name)
	}
	if public, err = bip32.ParseVersion(n.PublicVersion); err != nil {
		return private, public, errors.Wrapf(err, "network %s: public_version", n.Name)
	}
	return private, public, nil
}

func (n Network) Validate() error {
	if n.Name == "" {
		return errors.New("network without a name")
	}
	switch n.Curve {
	case secp256k1.Name, ed25519.Name:
	default:
		return errors.Errorf("network %s: unknown curve %q", n.Name, n.Curve)
	}
	switch n.Address {
	case "", AddressBTC, AddressETH:
	default:
		return errors.Errorf("network %s: unknown address kind %q", n.Name, n.Address)
	}
	_, _, err := n.Versions()
	return err
}

// Validate checks every profile and rejects duplicate names.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Networks))
	for _, n := range c.Networks {
		if err := n.Validate(); err != nil {
			return err
		}
		if _, dup := seen[n.Name]; dup {
			return errors.Errorf("network %s defined twice", n.Name)
		}
		seen[n.Name] = struct{}{}
	}
	return nil
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// environment overrides yaml
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("networks", len(cfg.Networks)).Msg("config loaded")
	return &cfg, nil
}

// Default returns bitcoin mainnet, bitcoin testnet and ethereum profiles.
func Default() *Config {
	return &Config{Networks: []Network{
		bitcoin(&chaincfg.MainNetParams, true),
		bitcoin(&chaincfg.TestNet3Params, false),
		{
			Name:           "ethereum",
			Curve:          secp256k1.Name,
			CoinType:       60,
			Address:        AddressETH,
			MainNet:        true,
			PrivateVersion: bip32.BitcoinMainnetPrivate.String(),
			PublicVersion:  bip32.BitcoinMainnetPublic.String(),
		},
	}}
}

func bitcoin(p *chaincfg.Params, mainnet bool) Network {
	return Network{
		Name:           p.Name,
		Curve:          secp256k1.Name,
		CoinType:       p.HDCoinType,
		Address:        AddressBTC,
		MainNet:        mainnet,
		PrivateVersion: bip32.Version(p.HDPrivateKeyID).String(),
		PublicVersion:  bip32.Version(p.HDPublicKeyID).String(),
	}
}
