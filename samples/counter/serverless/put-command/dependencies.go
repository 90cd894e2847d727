package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/weegigs/wee-commands-go/connectors/welambda"
	"github.com/weegigs/wee-commands-go/connectors/wehttp"
	"github.com/weegigs/wee-commands-go/samples/counter"
	"github.com/weegigs/wee-commands-go/support"
	"github.com/weegigs/wee-commands-go/we"
)

func NewDispatcher(registry *we.Registry) *we.Dispatcher {
	return we.NewDispatcher(registry)
}

func NewCommandStage(cfg support.Config, types *we.ContentTypes, dispatcher *we.Dispatcher, log *zerolog.Logger) *wehttp.CommandStage {
	return wehttp.NewCommandStage(types, dispatcher,
		wehttp.Logger(log),
		wehttp.Converter(we.DefaultExceptionConverter{IncludeDetails: cfg.ExceptionDetails}),
		wehttp.MaxBodyBytes(cfg.MaxBodyBytes),
	)
}

func NewGatewayHandler(stage *wehttp.CommandStage) welambda.Handler {
	return welambda.NewHandler(stage)
}

var Live = wire.NewSet(
	counter.PseudoRandomizer,
	counter.NewCounters,
	counter.ContentTypes,
	counter.Handlers,
	support.NewLogger,
	NewDispatcher,
	NewCommandStage,
	NewGatewayHandler,
)
