package leads_test

import (
	"context"
	"errors"
	"smartsite/internal/leads"
	"smartsite/pkg/domain"
	"smartsite/pkg/events"
	"smartsite/pkg/serrors"
	"testing"

	mockevents "smartsite/pkg/events/mock"
	mockstorage "smartsite/pkg/storage/mock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T, withPublisher bool) (
	*mockstorage.MockDocumentStorage,
	*mockevents.MockPublisher,
	*prometheus.Registry,
	leads.Service,
) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockDocumentStorage(ctrl)
	reg := prometheus.NewRegistry()

	opts := leads.Options{Registerer: reg}
	var pub *mockevents.MockPublisher
	if withPublisher {
		pub = mockevents.NewMockPublisher(ctrl)
		opts.Publisher = pub
	}

	s, err := leads.New(st, opts)
	require.NoError(t, err)

	return st, pub, reg, s
}

func insertCount(t *testing.T, reg *prometheus.Registry, collection, result string) int {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "smartsite_documents_inserted_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["collection"] == collection && labels["result"] == result {
				return int(m.GetCounter().GetValue())
			}
		}
	}

	return 0
}

func TestService_CaptureLead(t *testing.T) {
	st, _, reg, s := newTestService(t, false)

	email := "ana@roofs.com"
	lead := domain.Lead{Name: "Ana", Phone: "555-0100", Email: &email, Source: "demo"}
	st.EXPECT().InsertDocument(gomock.Any(), domain.LeadCollection, lead).Return("lead-1", nil)

	id, err := s.CaptureLead(context.Background(), lead)
	require.NoError(t, err)
	require.Equal(t, "lead-1", id)
	require.Equal(t, 1, insertCount(t, reg, domain.LeadCollection, "ok"))
}

func TestService_CaptureLead_StorageFailure(t *testing.T) {
	st, _, reg, s := newTestService(t, true)

	cause := errors.New("connection refused")
	st.EXPECT().InsertDocument(gomock.Any(), domain.LeadCollection, gomock.Any()).Return("", cause)
	// no Publish expectation: a failed insert must not emit events

	id, err := s.CaptureLead(context.Background(), domain.Lead{Name: "Ana", Phone: "1", Source: "demo"})
	require.Error(t, err)
	require.Empty(t, id)
	require.ErrorIs(t, err, serrors.ErrPersistence)
	require.ErrorIs(t, err, cause)
	require.Equal(t, serrors.ErrPersistence, serrors.KindOf(err))
	require.Equal(t, 1, insertCount(t, reg, domain.LeadCollection, "error"))
}

func TestService_CaptureLead_PublishesEvent(t *testing.T) {
	st, pub, _, s := newTestService(t, true)

	st.EXPECT().InsertDocument(gomock.Any(), domain.LeadCollection, gomock.Any()).Return("lead-1", nil)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e events.Event) error {
		require.Equal(t, events.LeadCaptured, e.Type)
		require.Equal(t, domain.LeadCollection, e.Collection)
		require.Equal(t, "lead-1", e.ID)
		require.False(t, e.OccurredAt.IsZero())

		return nil
	})

	id, err := s.CaptureLead(context.Background(), domain.Lead{Name: "Ana", Phone: "1", Source: "demo"})
	require.NoError(t, err)
	require.Equal(t, "lead-1", id)
}

func TestService_PublishFailureIsIgnored(t *testing.T) {
	st, pub, _, s := newTestService(t, true)

	st.EXPECT().InsertDocument(gomock.Any(), domain.DemoRequestCollection, gomock.Any()).Return("demo-1", nil)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	demo, err := s.RequestDemo(context.Background(), domain.DemoRequest{Name: "Bo", Phone: "1"})
	require.NoError(t, err)
	require.Equal(t, "demo-1", demo.ID)
}

func TestService_RequestDemo(t *testing.T) {
	st, pub, reg, s := newTestService(t, true)

	intent := "I need a roof inspection"
	req := domain.DemoRequest{Name: "Bo", Phone: "555", SampleIntent: &intent}
	st.EXPECT().InsertDocument(gomock.Any(), domain.DemoRequestCollection, req).Return("demo-1", nil)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e events.Event) error {
		require.Equal(t, events.DemoRequested, e.Type)
		require.Equal(t, "demo-1", e.ID)

		return nil
	})

	demo, err := s.RequestDemo(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "demo-1", demo.ID)
	require.Equal(t, domain.DemoTranscript(&intent), demo.Transcript)
	require.Len(t, demo.Transcript, 4)
	require.Equal(t, intent, demo.Transcript[0].Text)
	require.Equal(t, 1, insertCount(t, reg, domain.DemoRequestCollection, "ok"))
}

func TestService_RequestDemo_StorageFailure(t *testing.T) {
	st, _, _, s := newTestService(t, false)

	st.EXPECT().InsertDocument(gomock.Any(), domain.DemoRequestCollection, gomock.Any()).Return("", errors.New("timeout"))

	demo, err := s.RequestDemo(context.Background(), domain.DemoRequest{Name: "Bo", Phone: "1"})
	require.Nil(t, demo)
	require.ErrorIs(t, err, serrors.ErrPersistence)
}

func TestNew_SharedRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := prometheus.NewRegistry()

	_, err := leads.New(mockstorage.NewMockDocumentStorage(ctrl), leads.Options{Registerer: reg})
	require.NoError(t, err)
	_, err = leads.New(mockstorage.NewMockDocumentStorage(ctrl), leads.Options{Registerer: reg})
	require.NoError(t, err)

	_, err = leads.New(mockstorage.NewMockDocumentStorage(ctrl), leads.Options{})
	require.NoError(t, err)

	// a vec without observed label values exports nothing
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}
