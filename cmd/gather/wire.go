//go:build wireinject

package main

import (
	"io"

	"github.com/google/wire"
)

func BuildApp(args *Args, stdout io.Writer) (*App, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideReporter,
		ProvideCounter,
		ProvideMetrics,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
