package wehttp

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-commands-go/we"
)

type Option func(stage *CommandStage)

func Logger(log *zerolog.Logger) Option {
	return func(stage *CommandStage) {
		stage.log = log
	}
}

func Converter(converter we.ExceptionConverter) Option {
	return func(stage *CommandStage) {
		stage.converter = converter
	}
}

func Identity(extractor IdentityExtractor) Option {
	return func(stage *CommandStage) {
		stage.identity = extractor
	}
}

// MaxBodyBytes limits the size of command bodies. Zero means no limit.
func MaxBodyBytes(limit int64) Option {
	return func(stage *CommandStage) {
		stage.maxBodyBytes = limit
	}
}

func Metrics(metrics *CommandMetrics) Option {
	return func(stage *CommandStage) {
		stage.metrics = metrics
	}
}

// CommandStage accepts commands sent as `PUT /<uuid>` with a `+json` body.
// Every other request is passed on.
type CommandStage struct {
	types        we.ContentTypeResolver
	dispatcher   *we.Dispatcher
	log          *zerolog.Logger
	converter    we.ExceptionConverter
	identity     IdentityExtractor
	maxBodyBytes int64
	metrics      *CommandMetrics
}

func NewCommandStage(types we.ContentTypeResolver, dispatcher *we.Dispatcher, options ...Option) *CommandStage {
	stage := &CommandStage{types: types, dispatcher: dispatcher}
	for _, option := range options {
		option(stage)
	}

	if stage.log == nil {
		stage.log = &log.Logger
	}
	if stage.converter == nil {
		stage.converter = we.DefaultExceptionConverter{}
	}
	if stage.identity == nil {
		stage.identity = ContextIdentity
	}
	if stage.dispatcher == nil {
		stage.dispatcher = we.NewDispatcher(nil)
	}

	return stage
}

func (s *CommandStage) Handle(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if next == nil {
		next = http.NotFoundHandler()
	}

	if !strings.EqualFold(r.Method, http.MethodPut) {
		next.ServeHTTP(w, r)
		return
	}

	id, err := we.ParseCommandId(strings.TrimPrefix(routePath(r), "/"))
	if err != nil {
		next.ServeHTTP(w, r)
		return
	}

	contentType := r.Header.Get("Content-Type")
	logger := s.log.With().Str("command_id", id.String()).Str("content_type", contentType).Logger()

	if !we.IsJsonContentType(contentType) {
		logger.Debug().Msg("rejected command without a json content type")
		s.metrics.record("", outcomeBadRequest)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	command, err := s.decode(w, r, contentType)
	if err != nil {
		logger.Error().Str("error", we.Describe(err)).Msg("failed to decode command")
		s.metrics.record("", outcomeFailed)
		s.exception(w, &logger, http.StatusInternalServerError, err)
		return
	}

	var principal *we.Principal
	if p, ok := s.identity(r); ok {
		principal = &p
	}

	cc := we.NewCommandContext(r.Context(), id, principal)

	start := time.Now()
	outcome := s.dispatcher.Dispatch(cc, command)
	s.metrics.observe(outcome.Command, time.Since(start))

	logger = logger.With().Str("command", outcome.Command.String()).Logger()

	switch outcome.Status {
	case we.Dispatched:
		logger.Debug().Msg("command accepted")
		s.metrics.record(outcome.Command, outcomeAccepted)
		w.WriteHeader(http.StatusAccepted)
	case we.NotHandled:
		logger.Warn().Msg("no handler found for command")
		s.metrics.record(outcome.Command, outcomeNotHandled)
		s.exception(w, &logger, http.StatusBadRequest, outcome.Err())
	default:
		logger.Error().Str("error", we.Describe(outcome.Cause)).Msg("failed to execute command")
		s.metrics.record(outcome.Command, outcomeFailed)
		s.exception(w, &logger, http.StatusInternalServerError, outcome.Cause)
	}
}

func (s *CommandStage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handle(w, r, http.NotFoundHandler())
}

func (s *CommandStage) decode(w http.ResponseWriter, r *http.Request, contentType string) (we.Command, error) {
	if s.types == nil {
		return nil, &we.UnknownContentTypeError{ContentType: contentType}
	}

	commandType, err := s.types.Resolve(contentType)
	if err != nil {
		return nil, err
	}

	body, err := s.read(w, r)
	if err != nil {
		return nil, err
	}

	return commandType.Decode(r.Context(), body)
}

func (s *CommandStage) read(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	var reader io.Reader = r.Body
	if s.maxBodyBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read command body")
	}

	if err := r.Context().Err(); err != nil {
		return nil, err
	}

	return body, nil
}

// routePath is the request path relative to the chi mount point, if any.
func routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	return r.URL.Path
}

func (s *CommandStage) exception(w http.ResponseWriter, logger *zerolog.Logger, status int, err error) {
	model := s.convert(err)
	if writeErr := writeException(w, status, model); writeErr != nil {
		logger.Info().Err(writeErr).Msg("failed to write exception response")
	}
}

// convert falls back to the default converter if a custom one panics.
func (s *CommandStage) convert(err error) (model we.ExceptionModel) {
	defer func() {
		if r := recover(); r != nil {
			model = we.DefaultExceptionConverter{}.Convert(err)
		}
	}()

	return s.converter.Convert(err)
}
