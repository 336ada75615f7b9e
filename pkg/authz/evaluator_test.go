package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lakegate/lakegate/pkg/audit"
	"github.com/lakegate/lakegate/pkg/authz"
	"github.com/lakegate/lakegate/pkg/authz/mocks"
	"github.com/lakegate/lakegate/pkg/identity"
	"github.com/lakegate/lakegate/pkg/resource"
)

type captureSink struct {
	records []audit.Record
	err     error
}

func (s *captureSink) Record(_ context.Context, rec audit.Record) error {
	s.records = append(s.records, rec)
	return s.err
}

func selectRequest() authz.Request {
	return authz.NewRequest(
		resource.ForTable("sales", "q4", "orders"),
		authz.ActionSelect,
		identity.Identity{User: "alice", Groups: []string{"finance"}},
	)
}

func TestNewRequestComposition(t *testing.T) {
	t.Parallel()

	req := selectRequest()
	assert.Equal(t, "select", req.Access)
	assert.Equal(t, "alice", req.User)
	assert.Equal(t, []string{"finance"}, req.Groups)
	assert.Equal(t, "sales.q4.orders", req.Resource.String())

	adminReq := authz.NewRequest(resource.Root(), authz.ActionAdmin, identity.Identity{User: "ops"})
	assert.Equal(t, authz.AdminAccess, adminReq.Access)
}

func TestNewEvaluatorRequiresEngine(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		authz.NewEvaluator(nil)
	})
}

func TestEvaluateAuditsEveryDecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed bool
	}{
		{name: "allowed decision is audited", allowed: true},
		{name: "denied decision is audited", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			engine := mocks.NewMockPolicyEngine(ctrl)
			sink := &captureSink{}

			req := selectRequest()
			engine.EXPECT().
				IsAccessAllowed(gomock.Any(), req).
				Return(authz.Decision{Allowed: tt.allowed, Reasons: []string{"policy0"}}, nil)

			eval := authz.NewEvaluator(engine, authz.WithAuditSink(sink))
			decision, err := eval.Evaluate(context.Background(), req)

			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)

			require.Len(t, sink.records, 1, "exactly one audit record per evaluated request")
			rec := sink.records[0]
			assert.Equal(t, "alice", rec.User)
			assert.Equal(t, []string{"finance"}, rec.Groups)
			assert.Equal(t, "select", rec.Access)
			assert.Equal(t, tt.allowed, rec.Allowed)
			assert.Equal(t, req.Resource.Levels(), rec.Resource)
			assert.Empty(t, rec.Error)
		})
	}
}

func TestEvaluateAuditFailureDoesNotAlterOutcome(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	engine := mocks.NewMockPolicyEngine(ctrl)
	sink := &captureSink{err: errors.New("sink down")}

	req := selectRequest()
	engine.EXPECT().
		IsAccessAllowed(gomock.Any(), req).
		Return(authz.Decision{Allowed: true}, nil)

	eval := authz.NewEvaluator(engine, authz.WithAuditSink(sink))
	decision, err := eval.Evaluate(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Len(t, sink.records, 1)
}

func TestEvaluateEngineFailureIsEvaluationError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	engine := mocks.NewMockPolicyEngine(ctrl)
	sink := &captureSink{}

	engineErr := errors.New("policy service unreachable")
	req := selectRequest()
	engine.EXPECT().
		IsAccessAllowed(gomock.Any(), req).
		Return(authz.Decision{}, engineErr)

	eval := authz.NewEvaluator(engine, authz.WithAuditSink(sink))
	decision, err := eval.Evaluate(context.Background(), req)

	var evalErr *authz.EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.ErrorIs(t, err, engineErr)
	assert.False(t, decision.Allowed, "evaluation failure is not an allow")

	// The failure is still audited, as not-allowed with the error attached.
	require.Len(t, sink.records, 1)
	assert.False(t, sink.records[0].Allowed)
	assert.Contains(t, sink.records[0].Error, "policy service unreachable")
}

func TestEvaluateWithoutSink(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	engine := mocks.NewMockPolicyEngine(ctrl)

	req := selectRequest()
	engine.EXPECT().
		IsAccessAllowed(gomock.Any(), req).
		Return(authz.Decision{Allowed: true}, nil)

	decision, err := authz.NewEvaluator(engine).Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}
