package adapter

import (
	"fmt"
	"sort"
)

// adapterRegistry は、サイト名とSiteAdapter実装のマッピングを保持します。
var adapterRegistry = map[string]func() SiteAdapter{
	"4chan": NewFourChanAdapter,
}

// GetAdapter は、指定されたサイト名に対応するSiteAdapterの新しいインスタンスを返します。
func GetAdapter(siteName string) (SiteAdapter, error) {
	factory, ok := adapterRegistry[siteName]
	if !ok {
		return nil, fmt.Errorf("サイト名 '%s' に対応するアダプタが見つかりません (利用可能: %v)", siteName, AdapterNames())
	}
	return factory(), nil
}

// AdapterNames は、登録済みのサイト名を昇順で返します。
func AdapterNames() []string {
	names := make([]string, 0, len(adapterRegistry))
	for name := range adapterRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
