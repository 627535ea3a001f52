// Package mocks holds generated and hand-written test doubles.
//
// Regenerate with: go generate ./internal/mocks/...
package mocks

//go:generate go run go.uber.org/mock/mockgen -destination=gen/profile_resolver.go -package=gen github.com/partyhub/party-ui-api/internal/ports ProfileResolver
//go:generate go run go.uber.org/mock/mockgen -destination=gen/session_store.go -package=gen github.com/partyhub/party-ui-api/internal/ports SessionStore
//go:generate go run go.uber.org/mock/mockgen -destination=gen/login_provider.go -package=gen github.com/partyhub/party-ui-api/internal/ports LoginProvider
//go:generate go run go.uber.org/mock/mockgen -destination=gen/auth_event_recorder.go -package=gen github.com/partyhub/party-ui-api/internal/ports AuthEventRecorder
