package viewmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
)

func countingLogin(calls *int, res result.Result[domain.User]) Query[domain.LoginParams, domain.User] {
	return QueryFunc[domain.LoginParams, domain.User](func(context.Context, domain.LoginParams) result.Result[domain.User] {
		*calls++
		return res
	})
}

func TestLoginEmptyPasswordMakesNoCall(t *testing.T) {
	calls := 0
	vm := NewLogin(countingLogin(&calls, result.Success(domain.User{ID: "user1"})))
	vm.SetEmail("elif@example.com")

	_, ok := vm.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, "Lütfen şifrenizi girin", vm.State().Error)
	assert.Zero(t, calls)
}

func TestLoginValidationOrder(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{name: "empty email wins", email: " ", password: "", want: "Lütfen e-posta adresinizi girin"},
		{name: "password before shape", email: "nope", password: "", want: "Lütfen şifrenizi girin"},
		{name: "bad shape", email: "nope@", password: "secret", want: "Geçerli bir e-posta adresi girin"},
		{name: "missing tld", email: "a@b", password: "secret", want: "Geçerli bir e-posta adresi girin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			vm := NewLogin(countingLogin(&calls, result.Success(domain.User{})))
			vm.SetEmail(tt.email)
			vm.SetPassword(tt.password)

			_, ok := vm.Submit(context.Background())

			assert.False(t, ok)
			assert.Equal(t, tt.want, vm.State().Error)
			assert.Zero(t, calls)
		})
	}
}

func TestLoginSurfacesFailureVerbatimAndSettersClearIt(t *testing.T) {
	calls := 0
	vm := NewLogin(countingLogin(&calls, result.Fail[domain.User](result.AuthFailure, "Geçersiz e-posta veya şifre")))
	vm.SetEmail("elif@example.com")
	vm.SetPassword("wrong")

	_, ok := vm.Submit(context.Background())

	assert.False(t, ok)
	assert.Equal(t, 1, calls)
	st := vm.State()
	assert.Equal(t, "Geçersiz e-posta veya şifre", st.Error)
	assert.False(t, st.Loading)

	vm.SetPassword("right")
	assert.Empty(t, vm.State().Error)
}

func TestLoginSuccessReturnsUser(t *testing.T) {
	calls := 0
	vm := NewLogin(countingLogin(&calls, result.Success(domain.User{ID: "user1", Name: "Elif"})))
	vm.SetEmail(" elif@example.com ")
	vm.SetPassword("secret")

	user, ok := vm.Submit(context.Background())

	require.True(t, ok)
	assert.Equal(t, "user1", user.ID)
	assert.Empty(t, vm.State().Error)
}

func TestRegisterValidationOrder(t *testing.T) {
	valid := RegisterState{Name: "Elif", Surname: "Yılmaz", Email: "elif@example.com", Password: "secret1", PasswordConfirm: "secret1"}
	tests := []struct {
		name   string
		mutate func(*RegisterState)
		want   string
	}{
		{name: "surname missing", mutate: func(s *RegisterState) { s.Surname = ""; s.Email = "" }, want: "Lütfen ad ve soyad bilgilerinizi girin"},
		{name: "email missing", mutate: func(s *RegisterState) { s.Email = ""; s.Password = "" }, want: "Lütfen e-posta adresinizi girin"},
		{name: "email shape", mutate: func(s *RegisterState) { s.Email = "elif"; s.Password = "" }, want: "Geçerli bir e-posta adresi girin"},
		{name: "password missing", mutate: func(s *RegisterState) { s.Password = "" }, want: "Lütfen şifrenizi girin"},
		{name: "password short", mutate: func(s *RegisterState) { s.Password = "abc"; s.PasswordConfirm = "abc" }, want: "Şifre en az 6 karakter olmalıdır"},
		{name: "mismatch", mutate: func(s *RegisterState) { s.PasswordConfirm = "secret2" }, want: "Şifreler eşleşmiyor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := valid
			tt.mutate(&st)
			assert.Equal(t, tt.want, validateRegistration(st))
		})
	}
	assert.Empty(t, validateRegistration(valid))
}

func TestRegisterJoinsNameAndSurname(t *testing.T) {
	var got domain.RegisterParams
	vm := NewRegister(QueryFunc[domain.RegisterParams, domain.User](func(_ context.Context, p domain.RegisterParams) result.Result[domain.User] {
		got = p
		return result.Success(domain.User{ID: "u-new", Name: p.Name})
	}))
	vm.SetName(" Elif ")
	vm.SetSurname("Yılmaz ")
	vm.SetEmail("elif@example.com")
	vm.SetPassword("secret1")
	vm.SetPasswordConfirm("secret1")

	user, ok := vm.Submit(context.Background())

	require.True(t, ok)
	assert.Equal(t, "Elif Yılmaz", got.Name)
	assert.Equal(t, "Elif Yılmaz", user.Name)
}

func TestAddVenueRequiresFieldsLocally(t *testing.T) {
	calls := 0
	vm := NewAddVenue(QueryFunc[domain.VenueSuggestion, domain.Venue](func(_ context.Context, s domain.VenueSuggestion) result.Result[domain.Venue] {
		calls++
		return result.Success(domain.Venue{ID: "new-1", Name: s.Name})
	}))

	vm.SetFields("Moda Kahve", "Caferağa Mah.", "İstanbul", "", "")
	_, ok := vm.Submit(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "Lütfen tüm zorunlu alanları doldurun", vm.State().Error)
	assert.Zero(t, calls)

	vm.SetFields("Moda Kahve", "Caferağa Mah.", "İstanbul", "Kadıköy", "")
	venue, ok := vm.Submit(context.Background())
	require.True(t, ok)
	assert.Equal(t, "new-1", venue.ID)
	require.NotNil(t, vm.State().Created)
	assert.Equal(t, 1, calls)
}
