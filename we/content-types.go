package we

import (
	"context"
	"mime"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const JsonSuffix = "+json"

type decodeFunc func(ctx context.Context, body []byte) (Command, error)

// CommandType describes a command shape that can be decoded from a request.
type CommandType struct {
	Name        CommandName
	ContentType string
	decode      decodeFunc
}

func (t CommandType) Decode(ctx context.Context, body []byte) (Command, error) {
	if t.decode == nil {
		return nil, &DecodeError{Command: t.Name, Cause: errors.New("command type has no decoder")}
	}
	return t.decode(ctx, body)
}

type ContentTypeResolver interface {
	Resolve(contentType string) (CommandType, error)
}

// ContentTypes maps media types to command shapes. Register everything at
// startup; lookups are not synchronised with registration.
type ContentTypes struct {
	types map[string]CommandType
}

func NewContentTypes() *ContentTypes {
	return &ContentTypes{types: make(map[string]CommandType)}
}

func (ct *ContentTypes) Resolve(contentType string) (CommandType, error) {
	if ct != nil {
		if t, ok := ct.types[MediaType(contentType)]; ok {
			return t, nil
		}
	}

	return CommandType{}, &UnknownContentTypeError{ContentType: contentType}
}

func (ct *ContentTypes) Types() []CommandType {
	types := make([]CommandType, 0, len(ct.types))
	for _, t := range ct.types {
		types = append(types, t)
	}
	return types
}

// RegisterCommand makes contentType decode into a C.
func RegisterCommand[C any](ct *ContentTypes, contentType string) (CommandType, error) {
	var zero C
	name := CommandNameOf(zero)
	key := MediaType(contentType)

	if _, exists := ct.types[key]; exists {
		return CommandType{}, &DuplicateContentTypeError{ContentType: key}
	}

	t := CommandType{
		Name:        name,
		ContentType: key,
		decode: func(ctx context.Context, body []byte) (Command, error) {
			var command C
			if err := json.UnmarshalContext(ctx, body, &command); err != nil {
				return nil, &DecodeError{Command: name, Cause: errors.WithStack(err)}
			}
			return command, nil
		},
	}
	ct.types[key] = t

	return t, nil
}

// RegisterDefault registers C under ContentTypeFor its command name.
func RegisterDefault[C any](ct *ContentTypes) (CommandType, error) {
	var zero C
	return RegisterCommand[C](ct, ContentTypeFor(CommandNameOf(zero)))
}

// ContentTypeFor derives the vendor media type of a command, so
// `counter:increment` becomes `application/vnd.counter.increment+json`.
func ContentTypeFor(name CommandName) string {
	return "application/vnd." + strings.ReplaceAll(string(name), ":", ".") + JsonSuffix
}

// MediaType lower cases a content type and strips its parameters.
func MediaType(contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}

	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func IsJsonContentType(contentType string) bool {
	return strings.HasSuffix(MediaType(contentType), JsonSuffix)
}
