//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"github.com/google/wire"

	"github.com/weegigs/wee-commands-go/support"
)

func live(cfg support.Config) (*http.Server, error) {
	panic(wire.Build(Live))
}
