// Package loaders populates config structs from the environment, dotenv
// or JSON files, and command line flags.
package loaders

import "fmt"

type Loader interface {
	Load(dest any) error
}

// ChainLoader runs its loaders in order, each one overriding whatever the
// previous ones set. The last loader wins.
type ChainLoader struct {
	loaders []Loader
}

func NewChainLoader(loaders ...Loader) *ChainLoader {
	return &ChainLoader{loaders: loaders}
}

func (c *ChainLoader) Load(dest any) error {
	for _, loader := range c.loaders {
		if err := loader.Load(dest); err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
	}
	return nil
}
