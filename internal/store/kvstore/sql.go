package kvstore

import (
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/internal/store/sqlstore"
	"github.com/breeew/folio-api/pkg/register"
)

func init() {
	register.RegisterFunc(registerKey{}, func(p *Provider) {
		for _, driver := range []string{sqlstore.DRIVER_POSTGRES, sqlstore.DRIVER_SQLITE} {
			driver := driver
			p.drivers[driver] = func(cfg Config) (store.KVStore, error) {
				return sqlstore.NewKVStore(driver, cfg.DSN)
			}
		}
	})
}
