//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/weegigs/wee-commands-go/connectors/welambda"
	"github.com/weegigs/wee-commands-go/support"
)

func live(cfg support.Config) (welambda.Handler, error) {
	panic(wire.Build(Live))
}
