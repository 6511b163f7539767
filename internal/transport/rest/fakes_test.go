package rest

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/service/auth"
	"github.com/heartmarshall/mirrorme-backend/internal/service/survey"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type authServiceFake struct {
	login  func(ctx context.Context, profileID uuid.UUID, in auth.LoginInput) (*auth.AuthResult, error)
	signUp func(ctx context.Context, profileID uuid.UUID, in auth.SignUpInput) (*auth.AuthResult, error)
	logout func(ctx context.Context, profileID uuid.UUID) error
}

func (f *authServiceFake) Login(ctx context.Context, profileID uuid.UUID, in auth.LoginInput) (*auth.AuthResult, error) {
	return f.login(ctx, profileID, in)
}

func (f *authServiceFake) SignUp(ctx context.Context, profileID uuid.UUID, in auth.SignUpInput) (*auth.AuthResult, error) {
	return f.signUp(ctx, profileID, in)
}

func (f *authServiceFake) Logout(ctx context.Context, profileID uuid.UUID) error {
	return f.logout(ctx, profileID)
}

type deciderFake struct {
	decision domain.Decision
	err      error
}

func (f *deciderFake) Decide(context.Context, uuid.UUID) (domain.Decision, error) {
	return f.decision, f.err
}

func (f *deciderFake) Watch(ctx context.Context, _ uuid.UUID, fn func(domain.Decision)) error {
	if f.err != nil {
		return f.err
	}
	fn(f.decision)
	<-ctx.Done()
	return ctx.Err()
}

type surveyServiceFake struct {
	current func(ctx context.Context, profileID uuid.UUID) (survey.State, error)
	apply   func(ctx context.Context, profileID uuid.UUID, a survey.Action) (*survey.Outcome, error)
}

func (f *surveyServiceFake) Current(ctx context.Context, profileID uuid.UUID) (survey.State, error) {
	return f.current(ctx, profileID)
}

func (f *surveyServiceFake) Apply(ctx context.Context, profileID uuid.UUID, a survey.Action) (*survey.Outcome, error) {
	return f.apply(ctx, profileID, a)
}
