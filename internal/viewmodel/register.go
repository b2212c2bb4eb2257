package viewmodel

import (
	"context"
	"strings"

	"github.com/mekedron/city-discovery/internal/domain"
)

const (
	msgNameRequired     = "Lütfen ad ve soyad bilgilerinizi girin"
	msgPasswordTooShort = "Şifre en az 6 karakter olmalıdır"
	msgPasswordMismatch = "Şifreler eşleşmiyor"
	msgRegisterFallback = "Kayıt olurken bir hata oluştu"
	minPasswordLength   = 6
)

type RegisterState struct {
	Name            string
	Surname         string
	Email           string
	Password        string
	PasswordConfirm string
	Loading         bool
	Error           string
}

type Register struct {
	register Query[domain.RegisterParams, domain.User]
	state    *observable[RegisterState]
}

func NewRegister(register Query[domain.RegisterParams, domain.User]) *Register {
	return &Register{register: register, state: newObservable(RegisterState{}, nil)}
}

func (r *Register) State() RegisterState {
	return r.state.get()
}

func (r *Register) OnChange(fn func(RegisterState)) {
	r.state.subscribe(fn)
}

func (r *Register) edit(fn func(*RegisterState)) {
	r.state.update(func(s *RegisterState) {
		fn(s)
		s.Error = ""
	})
}

func (r *Register) SetName(v string)     { r.edit(func(s *RegisterState) { s.Name = v }) }
func (r *Register) SetSurname(v string)  { r.edit(func(s *RegisterState) { s.Surname = v }) }
func (r *Register) SetEmail(v string)    { r.edit(func(s *RegisterState) { s.Email = v }) }
func (r *Register) SetPassword(v string) { r.edit(func(s *RegisterState) { s.Password = v }) }
func (r *Register) SetPasswordConfirm(v string) {
	r.edit(func(s *RegisterState) { s.PasswordConfirm = v })
}

func (r *Register) Submit(ctx context.Context) (domain.User, bool) {
	st := r.state.get()
	if msg := validateRegistration(st); msg != "" {
		r.state.update(func(s *RegisterState) { s.Error = msg })
		return domain.User{}, false
	}

	r.state.update(func(s *RegisterState) {
		s.Loading = true
		s.Error = ""
	})
	res := r.register.Execute(ctx, domain.RegisterParams{
		Email:    strings.TrimSpace(st.Email),
		Password: st.Password,
		Name:     strings.TrimSpace(strings.TrimSpace(st.Name) + " " + strings.TrimSpace(st.Surname)),
	})
	user, err := res.Unpack()
	r.state.update(func(s *RegisterState) {
		s.Loading = false
		if err != nil {
			s.Error = messageOr(err.Message, msgRegisterFallback)
		}
	})
	return user, err == nil
}

func validateRegistration(st RegisterState) string {
	email := strings.TrimSpace(st.Email)
	switch {
	case strings.TrimSpace(st.Name) == "" || strings.TrimSpace(st.Surname) == "":
		return msgNameRequired
	case email == "":
		return msgEmailRequired
	case !emailPattern.MatchString(email):
		return msgEmailInvalid
	case strings.TrimSpace(st.Password) == "":
		return msgPasswordRequired
	case len([]rune(st.Password)) < minPasswordLength:
		return msgPasswordTooShort
	case st.Password != st.PasswordConfirm:
		return msgPasswordMismatch
	}
	return ""
}
