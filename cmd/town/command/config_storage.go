package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-town/internal/player"
	"github.com/pixil98/go-town/internal/storage"
	"github.com/pixil98/go-town/internal/town"
)

type StorageConfig struct {
	Areas      AssetConfig[*town.AreaDefinition] `json:"areas"`
	Characters AssetConfig[*player.Character]    `json:"characters"`
	Ledgers    AssetConfig[*town.LedgerRecord]   `json:"ledgers"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Areas.Validate("areas"))
	el.Add(c.Characters.Validate("characters"))
	el.Add(c.Ledgers.Validate("ledgers"))
	return el.Err()
}

func (c *StorageConfig) BuildAreaStore() (*storage.FileStore[*town.AreaDefinition], error) {
	return c.Areas.BuildFileStore()
}

func (c *StorageConfig) BuildCharacterStore() (*storage.FileStore[*player.Character], error) {
	return c.Characters.BuildFileStore()
}

func (c *StorageConfig) BuildLedgerStore() (*storage.FileStore[*town.LedgerRecord], error) {
	return c.Ledgers.BuildFileStore()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
