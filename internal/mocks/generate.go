// Package mocks provides gomock implementations of the portal ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockPortalAPI(ctrl)
//	api.EXPECT().LatestNotices(gomock.Any()).Return(notices, nil)
package mocks

// MockIdentityProvider covers CreateAccount, SignIn, BeginFederatedSignIn,
// CompleteFederatedSignIn, UpdateProfile, SignOut, ObserveIdentityChanges.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=identity_provider_mock.go github.com/jnu-cse/cse-portal/internal/ports IdentityProvider

// MockPortalAPI covers the notice, booking, dashboard, gallery and event endpoints.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=portal_api_mock.go github.com/jnu-cse/cse-portal/internal/ports PortalAPI
