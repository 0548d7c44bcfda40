package handler

import (
	"context"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/ports"
)

// Hand-rolled service stubs for handler tests: record inputs, return canned
// results.

type stubUserService struct {
	loginPair *domain.TokenPair
	loginUser *domain.User
	loginErr  error
	gotEmail  string

	registered *domain.User
	registerIn ports.CreateUserInput
	registerErr error

	user    *domain.User
	userErr error

	deleteResult *domain.CascadeResult
	deleteErr    error
}

func (s *stubUserService) Register(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	s.registerIn = in
	return s.registered, s.registerErr
}

func (s *stubUserService) Login(_ context.Context, email, _ string) (*domain.TokenPair, *domain.User, error) {
	s.gotEmail = email
	return s.loginPair, s.loginUser, s.loginErr
}

func (s *stubUserService) Get(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.userErr
}

func (s *stubUserService) List(_ context.Context) ([]*domain.User, error) {
	if s.user == nil {
		return nil, nil
	}
	return []*domain.User{s.user}, nil
}

func (s *stubUserService) Update(_ context.Context, _ domain.Principal, _ string, _ ports.UpdateUserInput) (*domain.User, error) {
	return s.user, s.userErr
}

func (s *stubUserService) Delete(_ context.Context, _ domain.Principal, _ string) (*domain.CascadeResult, error) {
	return s.deleteResult, s.deleteErr
}

type stubTokenService struct {
	pair       *domain.TokenPair
	issueErr   error
	principal  domain.Principal
	verifyErr  error
	access     string
	refreshErr error
	logoutErr  error
	gotRefresh string
	gotLogout  string
}

func (s *stubTokenService) VerifyAccess(_ string) (domain.Principal, error) {
	return s.principal, s.verifyErr
}

func (s *stubTokenService) IssueTokens(_ context.Context, _ *domain.User) (*domain.TokenPair, error) {
	return s.pair, s.issueErr
}

func (s *stubTokenService) Refresh(_ context.Context, refreshToken string) (string, error) {
	s.gotRefresh = refreshToken
	return s.access, s.refreshErr
}

func (s *stubTokenService) Logout(_ context.Context, refreshToken string) error {
	s.gotLogout = refreshToken
	return s.logoutErr
}

type stubCommentService struct {
	comment   *domain.Comment
	err       error
	gotInput  ports.CreateCommentInput
	principal domain.Principal
}

func (s *stubCommentService) Create(_ context.Context, p domain.Principal, in ports.CreateCommentInput) (*domain.Comment, error) {
	s.principal = p
	s.gotInput = in
	return s.comment, s.err
}

func (s *stubCommentService) Get(_ context.Context, _ string, _ ports.ExpandSet) (*ports.CommentDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.CommentDetail{Comment: s.comment}, nil
}

func (s *stubCommentService) List(_ context.Context, _ ports.ExpandSet) ([]*ports.CommentDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*ports.CommentDetail{{Comment: s.comment}}, nil
}

func (s *stubCommentService) ListByGame(_ context.Context, _ string) ([]*domain.Comment, error) {
	return []*domain.Comment{s.comment}, s.err
}

func (s *stubCommentService) ListByDeveloper(_ context.Context, _ string) ([]*domain.Comment, error) {
	return []*domain.Comment{s.comment}, s.err
}

func (s *stubCommentService) GetNested(_ context.Context, _, _, _ string) (*domain.Comment, error) {
	return s.comment, s.err
}

func (s *stubCommentService) Update(_ context.Context, p domain.Principal, _ string, _ ports.UpdateCommentInput) (*domain.Comment, error) {
	s.principal = p
	return s.comment, s.err
}

func (s *stubCommentService) Delete(_ context.Context, p domain.Principal, _ string) error {
	s.principal = p
	return s.err
}
