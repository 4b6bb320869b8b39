//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/hexcurl/internal/runner"
)

func InitializeRunner(cfgPath ConfigPath, levelsPath LevelsPath, opts runner.Options) (*runner.Runner, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
