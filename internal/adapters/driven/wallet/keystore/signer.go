// Package keystore provides a Signer adapter backed by a local encrypted
// keystore directory. It stands in for the browser-injected wallet the web
// surface would use: the key never leaves the keystore file, and every
// signing request asks the user to approve by entering the passphrase.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	ethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
)

// Ensure Signer implements the interface.
var _ driven.Signer = (*Signer)(nil)

// PassphraseFunc asks the user for the keystore passphrase. Returning an
// error aborts the signing request.
type PassphraseFunc func(prompt string) (string, error)

// Signer signs messages with a key from a local keystore directory.
type Signer struct {
	ks         *ethkeystore.KeyStore
	account    accounts.Account
	passphrase PassphraseFunc
}

// NewSigner opens the keystore at dir and selects the signing account.
// If address is empty the keystore must hold exactly one account. The
// passphrase function is called once per signing request.
func NewSigner(dir, address string, passphrase PassphraseFunc) (*Signer, error) {
	ks := ethkeystore.NewKeyStore(dir, ethkeystore.StandardScryptN, ethkeystore.StandardScryptP)
	return newSigner(ks, address, passphrase)
}

func newSigner(ks *ethkeystore.KeyStore, address string, passphrase PassphraseFunc) (*Signer, error) {
	account, err := selectAccount(ks, address)
	if err != nil {
		return nil, err
	}

	return &Signer{
		ks:         ks,
		account:    account,
		passphrase: passphrase,
	}, nil
}

// selectAccount picks the account matching address, or the sole account
// when no address is given.
func selectAccount(ks *ethkeystore.KeyStore, address string) (accounts.Account, error) {
	all := ks.Accounts()
	if len(all) == 0 {
		return accounts.Account{}, fmt.Errorf("keystore: %w: no accounts; run 'medichain wallet new' first", domain.ErrWalletUnavailable)
	}

	if address == "" {
		if len(all) > 1 {
			return accounts.Account{}, fmt.Errorf("keystore: %d accounts present, configure wallet.address to pick one", len(all))
		}
		return all[0], nil
	}

	for _, account := range all {
		if strings.EqualFold(account.Address.Hex(), address) {
			return account, nil
		}
	}
	return accounts.Account{}, fmt.Errorf("keystore: account %s: %w", address, domain.ErrNotFound)
}

// Address returns the wallet address of the signing account.
func (s *Signer) Address() string {
	return s.account.Address.Hex()
}

// SignMessage signs msg using EIP-191 personal-message signing. The
// recovery ID is offset by 27 to match what browser wallets emit. A
// cancelled prompt or wrong passphrase maps to domain.ErrSignatureDenied:
// the user did not authorise the signature.
func (s *Signer) SignMessage(ctx context.Context, msg string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pass, err := s.passphrase(fmt.Sprintf("Sign %q with %s - passphrase: ", msg, s.Address()))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrSignatureDenied
		}
		return nil, fmt.Errorf("read passphrase: %w", err)
	}

	signature, err := s.ks.SignHashWithPassphrase(s.account, pass, accounts.TextHash([]byte(msg)))
	if err != nil {
		if errors.Is(err, ethkeystore.ErrDecrypt) {
			return nil, domain.ErrSignatureDenied
		}
		return nil, fmt.Errorf("sign hash: %w", err)
	}

	signature[len(signature)-1] += 27
	return signature, nil
}

// CreateAccount generates a new key in the keystore at dir, encrypted with
// passphrase, and returns its address.
func CreateAccount(dir, passphrase string) (string, error) {
	ks := ethkeystore.NewKeyStore(dir, ethkeystore.StandardScryptN, ethkeystore.StandardScryptP)
	account, err := ks.NewAccount(passphrase)
	if err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	return account.Address.Hex(), nil
}

// ListAccounts returns the addresses present in the keystore at dir.
func ListAccounts(dir string) []string {
	ks := ethkeystore.NewKeyStore(dir, ethkeystore.StandardScryptN, ethkeystore.StandardScryptP)
	all := ks.Accounts()
	addresses := make([]string, 0, len(all))
	for _, account := range all {
		addresses = append(addresses, account.Address.Hex())
	}
	return addresses
}
