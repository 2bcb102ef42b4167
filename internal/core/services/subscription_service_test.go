package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/ratewatch/rate-notifier/internal/apperrors"
	"github.com/ratewatch/rate-notifier/internal/core/services"
	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SubscriptionRepository ---
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByEmailAndCurrency(ctx context.Context, email, currencyCode string) (*models.Subscription, error) {
	args := m.Called(ctx, email, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListActive(ctx context.Context) ([]models.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, sub models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// --- Test Suite ---
type SubscriptionServiceTestSuite struct {
	suite.Suite
	repo    *MockSubscriptionRepository
	service *services.SubscriptionService
	ctx     context.Context
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.repo = new(MockSubscriptionRepository)
	suite.service = services.NewSubscriptionService(suite.repo, slog.Default())
	suite.ctx = context.Background()
}

func notFoundErr() error {
	return fmt.Errorf("%w: subscription", apperrors.ErrNotFound)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_CreatesNewSubscription() {
	suite.repo.On("FindByEmailAndCurrency", suite.ctx, "user@example.com", "USD").
		Return(nil, notFoundErr()).Once()
	suite.repo.On("SaveSubscription", suite.ctx, mock.MatchedBy(func(sub models.Subscription) bool {
		return sub.Email == "user@example.com" &&
			sub.CurrencyCode == "USD" &&
			sub.Active &&
			sub.SubscriptionID != ""
	})).Return(nil).Once()

	sub, err := suite.service.Subscribe(suite.ctx, dto.SubscribeRequest{
		Email:        "USER@Example.com",
		CurrencyCode: "usd",
	})

	suite.Require().NoError(err)
	suite.Equal("user@example.com", sub.Email)
	suite.Equal("USD", sub.CurrencyCode)
	suite.True(sub.Active)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_ActivePairIsRejected() {
	existing := &models.Subscription{
		SubscriptionID: "sub-1",
		Email:          "user@example.com",
		CurrencyCode:   "USD",
		Active:         true,
	}
	suite.repo.On("FindByEmailAndCurrency", suite.ctx, "user@example.com", "USD").
		Return(existing, nil).Once()

	sub, err := suite.service.Subscribe(suite.ctx, dto.SubscribeRequest{
		Email:        "user@example.com",
		CurrencyCode: "USD",
	})

	suite.Require().Error(err)
	suite.Nil(sub)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.repo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_ReactivatesInactivePreservingIdentity() {
	createdAt := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	existing := &models.Subscription{
		SubscriptionID: "sub-1",
		Email:          "user@example.com",
		CurrencyCode:   "USD",
		Active:         false,
		CreatedAt:      createdAt,
		LastUpdatedAt:  createdAt,
	}
	suite.repo.On("FindByEmailAndCurrency", suite.ctx, "user@example.com", "USD").
		Return(existing, nil).Once()
	suite.repo.On("SaveSubscription", suite.ctx, mock.MatchedBy(func(sub models.Subscription) bool {
		return sub.SubscriptionID == "sub-1" &&
			sub.Active &&
			sub.CreatedAt.Equal(createdAt) &&
			sub.LastUpdatedAt.After(createdAt)
	})).Return(nil).Once()

	sub, err := suite.service.Subscribe(suite.ctx, dto.SubscribeRequest{
		Email:        "user@example.com",
		CurrencyCode: "USD",
	})

	suite.Require().NoError(err)
	suite.Equal("sub-1", sub.SubscriptionID)
	suite.True(sub.CreatedAt.Equal(createdAt))
	suite.repo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_InvalidCurrencyCode() {
	sub, err := suite.service.Subscribe(suite.ctx, dto.SubscribeRequest{
		Email:        "user@example.com",
		CurrencyCode: "DOLLARS",
	})

	suite.Require().Error(err)
	suite.Nil(sub)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "FindByEmailAndCurrency", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestUnsubscribe_DeactivatesActiveSubscription() {
	existing := &models.Subscription{
		SubscriptionID: "sub-1",
		Email:          "user@example.com",
		CurrencyCode:   "USD",
		Active:         true,
	}
	suite.repo.On("FindByEmailAndCurrency", suite.ctx, "user@example.com", "USD").
		Return(existing, nil).Once()
	suite.repo.On("SaveSubscription", suite.ctx, mock.MatchedBy(func(sub models.Subscription) bool {
		return sub.SubscriptionID == "sub-1" && !sub.Active
	})).Return(nil).Once()

	err := suite.service.Unsubscribe(suite.ctx, "User@Example.COM", "usd")

	suite.Require().NoError(err)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestUnsubscribe_MissingPair() {
	suite.repo.On("FindByEmailAndCurrency", suite.ctx, "user@example.com", "USD").
		Return(nil, notFoundErr()).Once()

	err := suite.service.Unsubscribe(suite.ctx, "user@example.com", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SubscriptionServiceTestSuite) TestUnsubscribe_AlreadyInactiveSucceedsWithoutWrite() {
	existing := &models.Subscription{
		SubscriptionID: "sub-1",
		Email:          "user@example.com",
		CurrencyCode:   "USD",
		Active:         false,
	}
	suite.repo.On("FindByEmailAndCurrency", suite.ctx, "user@example.com", "USD").
		Return(existing, nil).Once()

	err := suite.service.Unsubscribe(suite.ctx, "user@example.com", "USD")

	suite.Require().NoError(err)
	suite.repo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestListActiveSubscriptions() {
	subs := []models.Subscription{
		{SubscriptionID: "sub-1", Email: "a@example.com", CurrencyCode: "USD", Active: true},
		{SubscriptionID: "sub-2", Email: "b@example.com", CurrencyCode: "EUR", Active: true},
	}
	suite.repo.On("ListActive", suite.ctx).Return(subs, nil).Once()

	got, err := suite.service.ListActiveSubscriptions(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
