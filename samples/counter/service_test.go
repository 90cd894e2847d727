package counter

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/wee-commands-go/connectors/wehttp"
	"github.com/weegigs/wee-commands-go/we"
)

var entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

func createKey() string {
	return "go-test-" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

type test = func(t *testing.T)

type fixture struct {
	store   *Counters
	handler http.Handler
}

func send(f fixture, name we.CommandName, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/"+uuid.NewString(), strings.NewReader(body))
	r.Header.Set("Content-Type", we.ContentTypeFor(name))

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, r)
	return w
}

func incrementsCounter(f fixture) test {
	return func(t *testing.T) {
		key := createKey()
		amount := faker.New().IntBetween(1, 100)

		w := send(f, IncrementCmd, `{"counter":"`+key+`","amount":`+strconv.Itoa(amount)+`}`)

		assert.Equal(t, http.StatusAccepted, w.Code)
		counter, ok := f.store.Get(key)
		require.True(t, ok)
		assert.Equal(t, amount, counter.Value())
		assert.Equal(t, 1, counter.Applied)
	}
}

func decrementsCounter(f fixture) test {
	return func(t *testing.T) {
		key := createKey()

		assert.Equal(t, http.StatusAccepted, send(f, IncrementCmd, `{"counter":"`+key+`","amount":7}`).Code)
		assert.Equal(t, http.StatusAccepted, send(f, DecrementCmd, `{"counter":"`+key+`","amount":5}`).Code)

		counter, ok := f.store.Get(key)
		require.True(t, ok)
		assert.Equal(t, 2, counter.Value())
	}
}

func randomizesCounter(f fixture) test {
	return func(t *testing.T) {
		key := createKey()

		assert.Equal(t, http.StatusAccepted, send(f, RandomizeCmd, `{"counter":"`+key+`"}`).Code)

		counter, ok := f.store.Get(key)
		require.True(t, ok)
		assert.Equal(t, 42, counter.Value())
	}
}

func rejectsUnhandledReset(f fixture) test {
	return func(t *testing.T) {
		w := send(f, ResetCmd, `{"counter":"`+createKey()+`"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), we.CommandNotHandledException)
		assert.Contains(t, w.Body.String(), ResetCmd)
	}
}

func reportsInvalidCommands(f fixture) test {
	return func(t *testing.T) {
		w := send(f, IncrementCmd, `{"amount":1}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), we.InternalErrorException)
	}
}

func TestCounterCommands(t *testing.T) {
	types, err := ContentTypes()
	require.NoError(t, err)

	store := NewCounters()
	registry, err := Handlers(store, func() int { return 42 })
	require.NoError(t, err)

	nop := zerolog.Nop()
	stage := wehttp.NewCommandStage(types, we.NewDispatcher(registry), wehttp.Logger(&nop))
	f := fixture{store: store, handler: wehttp.Chain(nil, stage)}

	t.Run("increment counter", incrementsCounter(f))
	t.Run("decrement counter", decrementsCounter(f))
	t.Run("randomize counter", randomizesCounter(f))
	t.Run("reset has no handler", rejectsUnhandledReset(f))
	t.Run("invalid commands fail", reportsInvalidCommands(f))
}

func TestCountersRecordTheLastCommand(t *testing.T) {
	store := NewCounters()
	key := createKey()
	id := uuid.New()

	cc := we.NewCommandContext(context.Background(), id, &we.Principal{Subject: "user-1"})
	counter := store.Apply(cc, key, func(current int) int { return current + 3 })

	assert.Equal(t, 3, counter.Value())
	assert.Equal(t, id, counter.LastCommand)
	assert.Equal(t, "user-1", counter.UpdatedBy)
}
