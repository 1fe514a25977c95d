package notice

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadAndClear(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, httptest.NewRequest(http.MethodPost, "/rsvp", nil), Success(RSVPSent))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	w = httptest.NewRecorder()

	n, ok := ReadAndClear(w, r)

	require.True(t, ok)
	assert.Equal(t, Success(RSVPSent), n)
	assert.False(t, n.Destructive())

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, CookieName, cleared[0].Name)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestReadAndClear_NoCookie(t *testing.T) {
	w := httptest.NewRecorder()

	_, ok := ReadAndClear(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, ok)
	assert.Empty(t, w.Result().Cookies())
}

func TestReadAndClear_Garbage(t *testing.T) {
	tests := []string{
		"%%%",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"kind":"warning","key":"x"}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"kind":"error","key":"  "}`)),
	}

	for _, raw := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: raw})

		_, ok := ReadAndClear(httptest.NewRecorder(), r)
		assert.False(t, ok, "value %q", raw)
	}
}

func TestWrite_IgnoresInvalid(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, nil, Notice{Kind: "info", Key: RSVPSent})

	assert.Empty(t, w.Result().Cookies())
}

func TestCopy(t *testing.T) {
	assert.Equal(t, "Ошибка", Error(AdminDenied).Title())
	assert.Equal(t, "Неверный ключ доступа", Error(AdminDenied).Description())
	assert.Equal(t, "Не удалось подключиться к серверу", Error(AdminUnreachable).Description())
	assert.Equal(t, "Спасибо за ответ! 💕", Success(RSVPSent).Title())
	assert.True(t, Error(RSVPFailed).Destructive())
}

func TestCopy_SubmissionAndLoginMessagesDiffer(t *testing.T) {
	assert.NotEqual(t, Error(AdminDenied).Description(), Error(AdminUnreachable).Description())
	assert.NotEqual(t, Success(RSVPSent).Description(), Error(RSVPFailed).Description())
}

func TestCount_RussianPlurals(t *testing.T) {
	assert.Equal(t, "1 день", Count("countdown.days", 1))
	assert.Equal(t, "5 дней", Count("countdown.days", 5))
	assert.Equal(t, "дней", UnitLabel("countdown.days", 11))
	assert.Equal(t, "часа", UnitLabel("countdown.hours", 3))
	assert.Equal(t, "минута", UnitLabel("countdown.minutes", 21))
}

func TestWrite_SecureBehindProxy(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/rsvp", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	w := httptest.NewRecorder()
	Write(w, r, Success(RSVPSent))
	written := w.Result().Cookies()
	require.Len(t, written, 1)
	assert.True(t, written[0].Secure)

	read := httptest.NewRequest(http.MethodGet, "/", nil)
	read.Header.Set("X-Forwarded-Proto", "https")
	read.AddCookie(written[0])
	w = httptest.NewRecorder()
	_, ok := ReadAndClear(w, read)
	require.True(t, ok)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].Secure)
}
