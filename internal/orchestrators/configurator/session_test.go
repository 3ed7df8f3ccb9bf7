package configurator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/orchestrators/configurator"
	"github.com/KirkDiggler/configurator-api/internal/services/rules"
	rulesmock "github.com/KirkDiggler/configurator-api/internal/services/rules/mock"
	"github.com/KirkDiggler/configurator-api/internal/testutils"
)

type SessionTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockRules *rulesmock.MockService
	session   *configurator.Session
	ctx       context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRules = rulesmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	session, err := configurator.NewSession(&configurator.SessionConfig{Rules: s.mockRules})
	s.Require().NoError(err)
	s.session = session
}

func (s *SessionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SessionTestSuite) loadSundae() {
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductSundae).
		Return(testutils.SundaeRules(), nil)
	s.Require().NoError(s.session.Load(s.ctx, *testutils.SundaeProduct()))
}

func (s *SessionTestSuite) requireState(want configurator.LoadState) {
	got, _ := s.session.State()
	s.Require().Equal(want, got)
}

func (s *SessionTestSuite) TestNewSessionRequiresRules() {
	_, err := configurator.NewSession(&configurator.SessionConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Rules")
}

func (s *SessionTestSuite) TestStartsIdle() {
	s.requireState(configurator.StateIdle)
	s.Nil(s.session.Snapshot())
	s.Equal(selection.OutcomeRejected, s.session.ToggleOption("flavors", "vanilla"))

	_, err := s.session.LineItem(1)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *SessionTestSuite) TestLoadReady() {
	s.loadSundae()
	s.requireState(configurator.StateReady)

	s.session.SetContainer("cup")
	s.session.SetSize("regular")
	s.Equal(selection.OutcomeAdded, s.session.ToggleOption("flavors", "vanilla"))
	s.Equal(selection.OutcomeAdded, s.session.ToggleOption("flavors", "mango"))

	snap := s.session.Snapshot()
	s.True(snap.Validation.IsValid, "errors: %v", snap.Validation.Errors)
	// 50 base + 5 cup + 10 regular + 3 + 4
	s.True(testutils.Money("72").Equal(snap.TotalPrice), "got %s", snap.TotalPrice)
	s.Equal(300.0, snap.TotalNutrition.Calories)

	item, err := s.session.LineItem(2)
	s.Require().NoError(err)
	s.True(testutils.Money("144").Equal(item.LineTotal))
}

func (s *SessionTestSuite) TestLoadingIsObservable() {
	release := make(chan struct{})
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductJuice).
		DoAndReturn(func(context.Context, string) (*catalog.Rules, error) {
			<-release
			return &catalog.Rules{}, nil
		})

	done := make(chan error, 1)
	go func() { done <- s.session.Load(s.ctx, *testutils.JuiceProduct()) }()

	s.Eventually(func() bool {
		state, _ := s.session.State()
		return state == configurator.StateLoading
	}, time.Second, time.Millisecond)

	snap := s.session.Snapshot()
	s.Require().NotNil(snap)
	s.Empty(snap.Selections)
	s.Equal(selection.OutcomeRejected, s.session.ToggleOption("ice", "no-ice"))

	close(release)
	s.Require().NoError(<-done)

	// ready with zero groups is not loading
	s.requireState(configurator.StateReady)
	s.True(s.session.Snapshot().Validation.IsValid)
}

func (s *SessionTestSuite) TestLastLoadWins() {
	release := make(chan struct{})
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductSundae).
		DoAndReturn(func(context.Context, string) (*catalog.Rules, error) {
			<-release
			return testutils.SundaeRules(), nil
		})
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductJuice).
		Return(testutils.JuiceRules(), nil)

	slow := make(chan error, 1)
	go func() { slow <- s.session.Load(s.ctx, *testutils.SundaeProduct()) }()
	s.Eventually(func() bool {
		state, _ := s.session.State()
		return state == configurator.StateLoading
	}, time.Second, time.Millisecond)

	s.Require().NoError(s.session.Load(s.ctx, *testutils.JuiceProduct()))
	close(release)
	s.ErrorIs(<-slow, configurator.ErrLoadSuperseded)

	snap := s.session.Snapshot()
	s.Equal(testutils.ProductJuice, snap.ProductID)
	s.requireState(configurator.StateReady)
	s.Equal(selection.OutcomeAdded, s.session.ToggleOption("ice", "no-ice"))
}

func (s *SessionTestSuite) TestProductSwitchClearsSelections() {
	s.loadSundae()
	s.session.SetContainer("tub")
	s.session.ToggleOption("flavors", "vanilla")

	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductJuice).
		Return(testutils.JuiceRules(), nil)
	s.Require().NoError(s.session.Load(s.ctx, *testutils.JuiceProduct()))
	s.Nil(s.session.Snapshot().SelectedContainer)

	s.loadSundae()
	snap := s.session.Snapshot()
	s.Nil(snap.SelectedContainer)
	s.Empty(snap.Selections)
}

func (s *SessionTestSuite) TestRulesUnavailableKeepsContainersAndSizes() {
	unavailable := errors.WrapWithCode(errors.Unavailable("dial tcp: refused"), errors.CodeUnavailable, "rules unavailable for product sundae")
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductSundae).
		Return(nil, unavailable)
	s.mockRules.EXPECT().
		LastKnown(testutils.ProductSundae).
		Return(testutils.SundaeRules(), true)

	err := s.session.Load(s.ctx, *testutils.SundaeProduct())
	s.ErrorIs(err, rules.ErrRulesUnavailable)

	state, loadErr := s.session.State()
	s.Equal(configurator.StateRulesUnavailable, state)
	s.ErrorIs(loadErr, rules.ErrRulesUnavailable)

	s.session.SetContainer("tub")
	s.session.SetSize("large")
	s.Equal(selection.OutcomeRejected, s.session.ToggleOption("flavors", "vanilla"))

	snap := s.session.Snapshot()
	s.Require().NotNil(snap.SelectedContainer)
	s.Equal("tub", snap.SelectedContainer.ID)
	// 50 base + 8 tub + 60 large
	s.True(testutils.Money("118").Equal(snap.TotalPrice), "got %s", snap.TotalPrice)
}

func (s *SessionTestSuite) TestRulesUnavailableWithoutHistory() {
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductSundae).
		Return(nil, errors.Unavailable("rules unavailable"))
	s.mockRules.EXPECT().
		LastKnown(testutils.ProductSundae).
		Return(nil, false)

	s.Error(s.session.Load(s.ctx, *testutils.SundaeProduct()))
	s.requireState(configurator.StateRulesUnavailable)
	s.Empty(s.session.Snapshot().AvailableSizes)
}

func (s *SessionTestSuite) TestCanceledLoadReturnsToIdle() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductSundae).
		DoAndReturn(func(ctx context.Context, _ string) (*catalog.Rules, error) {
			cancel()
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "rules fetch abandoned")
		})

	err := s.session.Load(ctx, *testutils.SundaeProduct())
	s.Require().Error(err)
	s.True(errors.IsCanceled(err))
	s.NotErrorIs(err, configurator.ErrLoadSuperseded)
	s.NotErrorIs(err, rules.ErrRulesUnavailable)

	state, loadErr := s.session.State()
	s.Equal(configurator.StateIdle, state)
	s.NoError(loadErr)
	s.Nil(s.session.Snapshot())
}

func (s *SessionTestSuite) TestDeadlineExceededLoadIsNotRulesUnavailable() {
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductSundae).
		Return(nil, errors.New(errors.CodeDeadlineExceeded, "rules fetch abandoned"))

	err := s.session.Load(s.ctx, *testutils.SundaeProduct())
	s.Require().Error(err)
	s.NotErrorIs(err, configurator.ErrLoadSuperseded)
	s.requireState(configurator.StateIdle)

	// a later load still works
	s.loadSundae()
	s.requireState(configurator.StateReady)
}

func (s *SessionTestSuite) TestDismissDiscardsInFlightLoad() {
	release := make(chan struct{})
	s.mockRules.EXPECT().
		Fetch(gomock.Any(), testutils.ProductSundae).
		DoAndReturn(func(context.Context, string) (*catalog.Rules, error) {
			<-release
			return testutils.SundaeRules(), nil
		})

	done := make(chan error, 1)
	go func() { done <- s.session.Load(s.ctx, *testutils.SundaeProduct()) }()
	s.Eventually(func() bool {
		state, _ := s.session.State()
		return state == configurator.StateLoading
	}, time.Second, time.Millisecond)

	s.session.Dismiss()
	close(release)
	s.ErrorIs(<-done, configurator.ErrLoadSuperseded)

	s.requireState(configurator.StateIdle)
	s.Nil(s.session.Snapshot())
}

func (s *SessionTestSuite) TestResetKeepsProduct() {
	s.loadSundae()
	s.session.SetContainer("cup")
	s.session.ToggleOption("sauce", "caramel")

	s.session.Reset()
	snap := s.session.Snapshot()
	s.Equal(testutils.ProductSundae, snap.ProductID)
	s.Nil(snap.SelectedContainer)
	s.Empty(snap.SelectedOptionsFlat)
	s.requireState(configurator.StateReady)
}

func (s *SessionTestSuite) TestLoadRejectsInvalidProduct() {
	err := s.session.Load(s.ctx, catalog.Product{ID: "broken", PricingMode: "per_gram"})
	s.True(errors.IsInvalidArgument(err))
	s.requireState(configurator.StateIdle)
}
