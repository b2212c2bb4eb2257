package viewmodel

import (
	"context"
	"regexp"
	"strings"

	"github.com/mekedron/city-discovery/internal/domain"
)

const (
	msgEmailRequired    = "Lütfen e-posta adresinizi girin"
	msgPasswordRequired = "Lütfen şifrenizi girin"
	msgEmailInvalid     = "Geçerli bir e-posta adresi girin"
	msgLoginFallback    = "Giriş yapılırken bir hata oluştu"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type LoginState struct {
	Email    string
	Password string
	Loading  bool
	Error    string
}

type Login struct {
	login Query[domain.LoginParams, domain.User]
	state *observable[LoginState]
}

func NewLogin(login Query[domain.LoginParams, domain.User]) *Login {
	return &Login{login: login, state: newObservable(LoginState{}, nil)}
}

func (l *Login) State() LoginState {
	return l.state.get()
}

func (l *Login) OnChange(fn func(LoginState)) {
	l.state.subscribe(fn)
}

func (l *Login) SetEmail(email string) {
	l.state.update(func(s *LoginState) {
		s.Email = email
		s.Error = ""
	})
}

func (l *Login) SetPassword(password string) {
	l.state.update(func(s *LoginState) {
		s.Password = password
		s.Error = ""
	})
}

// Submit validates locally, then signs in. It returns the user and true on success;
// navigation is left to the caller.
func (l *Login) Submit(ctx context.Context) (domain.User, bool) {
	st := l.state.get()
	if msg := validateLogin(st.Email, st.Password); msg != "" {
		l.state.update(func(s *LoginState) { s.Error = msg })
		return domain.User{}, false
	}

	l.state.update(func(s *LoginState) {
		s.Loading = true
		s.Error = ""
	})
	res := l.login.Execute(ctx, domain.LoginParams{
		Email:    strings.TrimSpace(st.Email),
		Password: st.Password,
	})
	user, err := res.Unpack()
	l.state.update(func(s *LoginState) {
		s.Loading = false
		if err != nil {
			s.Error = messageOr(err.Message, msgLoginFallback)
		}
	})
	return user, err == nil
}

func validateLogin(email, password string) string {
	switch {
	case strings.TrimSpace(email) == "":
		return msgEmailRequired
	case strings.TrimSpace(password) == "":
		return msgPasswordRequired
	case !emailPattern.MatchString(strings.TrimSpace(email)):
		return msgEmailInvalid
	}
	return ""
}

func messageOr(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}
