package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-hukum-web/internal/pkg/logger"
	"ai-hukum-web/pkg/events"
	"ai-hukum-web/pkg/i18n"
	"ai-hukum-web/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type collectingForwarder struct {
	mu   sync.Mutex
	got  []events.Event
	fail bool
}

func (f *collectingForwarder) Publish(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, e)
	if f.fail {
		return errors.New("nats down")
	}
	return nil
}

func (f *collectingForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.got)
}

func TestActivityFlowsToSinkAndForwarder(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	sink := logger.FromZap(zap.New(core))
	fwd := &collectingForwarder{fail: true}

	svc := NewActivityService(pubSub, "ACTIVITY", sink, fwd, nopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Consume(ctx))

	svc.Record(ctx, events.New(events.TypeDraftGenerated, "v1", map[string]interface{}{"doc_type": "Surat Kuasa"}))
	svc.Record(ctx, events.New(events.TypeLocaleChanged, "v1", nil))

	require.Eventually(t, func() bool { return fwd.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return logs.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	first := logs.All()[0]
	assert.Equal(t, events.TypeDraftGenerated, first.Message)
	assert.Equal(t, "ACTIVITY", first.ContextMap()["module"])
}

func TestLocaleServiceRecordsChangesOnly(t *testing.T) {
	act := &recordingActivity{}
	svc := NewLocaleService(act, nopLogger())
	v := store.NewVisitor("v1", nil)
	ctx := context.Background()

	require.NoError(t, svc.SetLocale(ctx, v, "en"))
	require.NoError(t, svc.SetLocale(ctx, v, "en"))
	assert.Equal(t, i18n.English, v.Locale.Locale())
	assert.Equal(t, []string{events.TypeLocaleChanged}, act.recorded())

	assert.Error(t, svc.SetLocale(ctx, v, "fr"))
	assert.Equal(t, i18n.English, v.Locale.Locale())
}
