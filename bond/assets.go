package bond

import (
	"math/big"
	"sync"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
)

// AssetProvider is the collaborator handling custody of non-native bond
// principal. Native-asset principal is value attached to the call and never
// goes through a provider.
type AssetProvider interface {
	// TransferIn pulls amount from `from` into bond custody. A returned error
	// aborts the enclosing deposit.
	TransferIn(db vm.StateDB, from common.Address, amount *big.Int) error

	// TransferOut pays amount from bond custody to `to`. A returned error
	// aborts the enclosing withdrawal.
	TransferOut(db vm.StateDB, to common.Address, amount *big.Int) error
}

var (
	providerMu sync.RWMutex
	providers  = make(map[string]AssetProvider)
)

// RegisterAssetProvider installs the custody provider for an external asset
// kind. Registration happens at process start, mirroring handler registration.
func RegisterAssetProvider(kind string, p AssetProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	providers[kind] = p
}

func assetProvider(kind string) (AssetProvider, error) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	p, ok := providers[kind]
	if !ok {
		return nil, ErrUnknownAssetKind
	}
	return p, nil
}
