// Package wallet derives BIP44 accounts for a set of configured networks
// from a single secp256k1 master key.
package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/linlinbupt123-crypto/wallet_core/bip32"
	"github.com/linlinbupt123-crypto/wallet_core/chain"
	"github.com/linlinbupt123-crypto/wallet_core/config"
	"github.com/linlinbupt123-crypto/wallet_core/curve/secp256k1"
	wrapErrors "github.com/linlinbupt123-crypto/wallet_core/errors"
)

var log = zerolog.Nop()

func UseLogger(logger zerolog.Logger) {
	log = logger.With().Str("pkg", "wallet").Logger()
}

// Account is one receiving address of a network. Address is empty for
// networks configured without an address kind; HasAddress reports which case
// applies.
type Account struct {
	Chain             string
	Path              bip32.DerivationPath
	Address           string
	ExtendedPublicKey secp256k1.ExtendedPublicKey
	Index             uint32
}

// HasAddress reports whether the network renders addresses. Without one
// the account is usable only through its ExtendedPublicKey.
func (a *Account) HasAddress() bool {
	return a.Address != ""
}

type network struct {
	cfg     config.Network
	chain   chain.Chain
	private bip32.Version
	public  bip32.Version
}

type Wallet struct {
	master   secp256k1.ExtendedPrivateKey
	networks map[string]network
}

// New registers networks against master. Profiles are validated.
//
// Only secp256k1 networks can be derived: the master is a secp256k1 key and
// every address renderer takes a secp256k1 public key. Networks on other
// curves, such as ed25519, are accepted and kept so that lookups on them
// fail with UnsupportedCurve instead of AccountNotFound. Derive ed25519
// keys directly with the curve/ed25519 package.
func New(master secp256k1.ExtendedPrivateKey, networks []config.Network) (*Wallet, error) {
	w := &Wallet{
		master:   master,
		networks: make(map[string]network, len(networks)),
	}
	for _, n := range networks {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, dup := w.networks[n.Name]; dup {
			return nil, errors.Errorf("network %s registered twice", n.Name)
		}
		priv, pub, err := n.Versions()
		if err != nil {
			return nil, err
		}
		w.networks[n.Name] = network{cfg: n, chain: chainFor(n), private: priv, public: pub}
	}
	log.Debug().Object("master", master).Int("networks", len(w.networks)).Msg("wallet opened")
	return w, nil
}

func chainFor(n config.Network) chain.Chain {
	switch n.Address {
	case config.AddressBTC:
		return chain.NewBTCChain(n.MainNet)
	case config.AddressETH:
		return chain.NewETHChain()
	}
	return nil
}

func (w *Wallet) lookup(op, name string) (network, error) {
	n, ok := w.networks[name]
	if !ok {
		return network{}, wrapErrors.WrapWithCode(wrapErrors.AccountNotFound, op,
			errors.Errorf("no network named %q", name))
	}
	if n.cfg.Curve != secp256k1.Name {
		return network{}, wrapErrors.WrapWithCode(wrapErrors.UnsupportedCurve, op,
			errors.Errorf("network %s uses %s", name, n.cfg.Curve))
	}
	return n, nil
}

// Networks lists the registered network names.
func (w *Wallet) Networks() []string {
	out := make([]string, 0, len(w.networks))
	for name := range w.networks {
		out = append(out, name)
	}
	return out
}

// AccountXPub returns the encoded m/44'/coin'/account' public key of a
// network, the key watch-only clients derive receiving addresses from.
func (w *Wallet) AccountXPub(name string, account uint32) (string, error) {
	n, err := w.lookup("wallet.AccountXPub", name)
	if err != nil {
		return "", err
	}
	key, err := w.master.Derive(chain.AccountPath(n.cfg.CoinType, account))
	if err != nil {
		return "", err
	}
	return key.DeterministicPublicKey().Encode(n.public), nil
}

// DeriveAccount derives the external address at index of account.
func (w *Wallet) DeriveAccount(name string, account, index uint32) (*Account, error) {
	const op = "wallet.DeriveAccount"

	n, err := w.lookup(op, name)
	if err != nil {
		return nil, err
	}
	path := chain.BIP44Path(n.cfg.CoinType, account, chain.ExternalChain, index)
	key, err := w.master.Derive(path)
	if err != nil {
		return nil, err
	}
	pub := key.DeterministicPublicKey()
	var addr string
	if n.chain != nil {
		if addr, err = render(n, pub); err != nil {
			return nil, err
		}
	}
	log.Debug().Str("network", name).Stringer("path", path).Bool("has_address", n.chain != nil).
		Str("address", addr).Msg("account derived")
	return &Account{
		Chain:             name,
		Path:              path,
		Address:           addr,
		ExtendedPublicKey: pub,
		Index:             index,
	}, nil
}

// SignerKey returns the private key behind DeriveAccount(name, account,
// index) for handing to a signer.
func (w *Wallet) SignerKey(name string, account, index uint32) (*btcec.PrivateKey, error) {
	n, err := w.lookup("wallet.SignerKey", name)
	if err != nil {
		return nil, err
	}
	key, err := w.master.Derive(chain.BIP44Path(n.cfg.CoinType, account, chain.ExternalChain, index))
	if err != nil {
		return nil, err
	}
	return key.PrivateKey()
}

// WatchAddress derives change/index below an encoded account xpub without
// touching private material. The xpub must carry the network's public
// version tag.
func (w *Wallet) WatchAddress(name, xpub string, change, index uint32) (string, error) {
	const op = "wallet.WatchAddress"

	n, err := w.lookup(op, name)
	if err != nil {
		return "", err
	}
	key, version, err := secp256k1.DecodePublic(xpub)
	if err != nil {
		return "", err
	}
	if version != n.public {
		return "", wrapErrors.WrapWithCode(wrapErrors.InvalidKeyType, op,
			errors.Errorf("version %s does not belong to network %s", version, name))
	}
	if n.chain == nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.InvalidKeyType, op,
			errors.Errorf("network %s has no address kind", name))
	}
	child, err := key.Derive(bip32.DerivationPath{bip32.Soft(change), bip32.Soft(index)})
	if err != nil {
		return "", err
	}
	return render(n, child)
}

// render needs n.chain to be set.
func render(n network, key secp256k1.ExtendedPublicKey) (string, error) {
	pub, err := key.PublicKey()
	if err != nil {
		return "", err
	}
	return n.chain.Address(pub)
}
