package senders

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// Manager resolves signer references against the accounts configured for
// the selected network. Keys are parsed on first use.
type Manager struct {
	accounts []string

	once    sync.Once
	signers []*domain.Signer
	err     error
}

// NewManager creates a signer manager for the configured network
func NewManager(cfg *config.RuntimeConfig) *Manager {
	var accounts []string
	if cfg.Network != nil {
		accounts = cfg.Network.Accounts
	}
	return NewManagerFromKeys(accounts)
}

// NewManagerFromKeys creates a signer manager from hex private keys
func NewManagerFromKeys(keys []string) *Manager {
	return &Manager{accounts: keys}
}

func (m *Manager) load() ([]*domain.Signer, error) {
	m.once.Do(func() {
		for i, account := range m.accounts {
			key, err := parsePrivateKey(account)
			if err != nil {
				m.err = fmt.Errorf("account #%d: %w", i, err)
				return
			}
			m.signers = append(m.signers, &domain.Signer{
				Address: crypto.PubkeyToAddress(key.PublicKey),
				Key:     key,
			})
		}
	})
	return m.signers, m.err
}

// ResolveSigner returns the signer for ref. An empty ref selects the first
// account; otherwise ref is a zero-based index or an account address.
func (m *Manager) ResolveSigner(ctx context.Context, ref string) (*domain.Signer, error) {
	signers, err := m.load()
	if err != nil {
		return nil, err
	}
	if len(signers) == 0 {
		return nil, domain.ErrMissingPrivateKey
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return signers[0], nil
	}

	if index, err := strconv.Atoi(ref); err == nil {
		if index < 0 || index >= len(signers) {
			return nil, fmt.Errorf("%w: index %d (%d accounts configured)", domain.ErrSignerNotFound, index, len(signers))
		}
		return signers[index], nil
	}

	if common.IsHexAddress(ref) {
		address := common.HexToAddress(ref)
		for _, signer := range signers {
			if signer.Address == address {
				return signer, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrSignerNotFound, ref)
}

// Addresses returns the addresses of all configured accounts
func (m *Manager) Addresses() ([]common.Address, error) {
	signers, err := m.load()
	if err != nil {
		return nil, err
	}
	addresses := make([]common.Address, len(signers))
	for i, signer := range signers {
		addresses[i] = signer.Address
	}
	return addresses, nil
}

// parsePrivateKey parses a hex private key with or without 0x prefix
func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if len(hexKey) != 64 {
		return nil, fmt.Errorf("invalid private key: expected 32 bytes, got %d hex characters", len(hexKey))
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// Ensure the manager implements the interface
var _ usecase.SignerResolver = (*Manager)(nil)
