// Package mocks provides gomock implementations of the repository and port
// interfaces used by the service and HTTP layers.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserRepository(ctrl)
//	users.EXPECT().FindByEmail(gomock.Any(), "a@b.c").Return(user, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/core UserRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=group_repository_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/core GroupRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=role_repository_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/core RoleRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=tx_runner_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/core TxRunner
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_codec_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/ports TokenCodec
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/ports SessionStore
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=password_hasher_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/ports PasswordHasher
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=mailer_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/ports Mailer
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=url_signer_mock.go github.com/Asad13/ad-campaign-builder-backend/internal/ports URLSigner
