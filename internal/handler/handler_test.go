package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatline/internal/domain/message"
	"chatline/internal/events"
	"chatline/internal/repository"
	"chatline/internal/services"
	chat_errors "chatline/pkg/errors"
	"chatline/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func newRouter(users UserService, messages MessageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	uh := NewUserHandler(users)
	r.POST("/user/signup", uh.Signup)
	r.POST("/user/login", uh.Login)
	r.PATCH("/user/resetPassword", uh.ResetPassword)
	r.GET("/user/getUser/:username", uh.GetUser)
	r.DELETE("/user/deleteUser/:username", uh.DeleteUser)

	mh := NewMessageHandler(messages)
	r.POST("/messaging/addMessage", mh.AddMessage)
	r.GET("/messaging/getMessages", mh.GetMessages)
	return r
}

func newMemoryRouter() *gin.Engine {
	store := repository.NewMemoryStore()
	return newRouter(
		services.NewUserService(store.Users(), logger.NewNop()),
		services.NewMessageService(store.Messages(), events.NopPublisher{}, logger.NewNop()),
	)
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestUserHandler_SignupAndLogin(t *testing.T) {
	r := newMemoryRouter()

	w, env := do(t, r, http.MethodPost, "/user/signup", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "alice", created["username"])
	assert.NotEmpty(t, created["_id"])
	assert.NotContains(t, created, "password")

	w, env = do(t, r, http.MethodPost, "/user/signup", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "CONFLICT", env.Code)

	w, _ = do(t, r, http.MethodPost, "/user/login", `{"username":"alice","password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodPost, "/user/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Login failed", env.Error)

	_, unknown := do(t, r, http.MethodPost, "/user/login", `{"username":"nobody","password":"secret"}`)
	assert.Equal(t, env.Error, unknown.Error)
	assert.Equal(t, env.Code, unknown.Code)
}

func TestUserHandler_InvalidBodies(t *testing.T) {
	r := newMemoryRouter()

	cases := []struct {
		name, method, path, body string
	}{
		{"signup malformed json", http.MethodPost, "/user/signup", `{"username":`},
		{"signup missing password", http.MethodPost, "/user/signup", `{"username":"alice"}`},
		{"login empty username", http.MethodPost, "/user/login", `{"username":"","password":"x"}`},
		{"reset missing password", http.MethodPatch, "/user/resetPassword", `{"username":"alice"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Invalid user body", env.Error)
		})
	}
}

func TestUserHandler_ResetGetDelete(t *testing.T) {
	r := newMemoryRouter()
	do(t, r, http.MethodPost, "/user/signup", `{"username":"bob","password":"old"}`)

	w, _ := do(t, r, http.MethodPatch, "/user/resetPassword", `{"username":"bob","password":"new"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPost, "/user/login", `{"username":"bob","password":"new"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/user/getUser/bob", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"username":"bob"`)

	w, _ = do(t, r, http.MethodDelete, "/user/deleteUser/bob", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/user/getUser/bob", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)

	w, env = do(t, r, http.MethodPatch, "/user/resetPassword", `{"username":"bob","password":"again"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestMessageHandler_AddAndList(t *testing.T) {
	r := newMemoryRouter()

	w, env := do(t, r, http.MethodPost, "/messaging/addMessage",
		`{"messageToAdd":{"msg":"second","msgFrom":"alice","msgDateTime":"2024-06-06T00:00:01Z"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"msg":"second"`)

	do(t, r, http.MethodPost, "/messaging/addMessage",
		`{"messageToAdd":{"msg":"first","msgFrom":"bob","msgDateTime":"2024-06-06T00:00:00Z"}}`)

	w, env = do(t, r, http.MethodGet, "/messaging/getMessages", "")
	require.Equal(t, http.StatusOK, w.Code)

	var msgs []message.Message
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Msg)
	assert.Equal(t, "second", msgs[1].Msg)
}

func TestMessageHandler_AcceptsZeroInstant(t *testing.T) {
	r := newMemoryRouter()

	w, env := do(t, r, http.MethodPost, "/messaging/addMessage",
		`{"messageToAdd":{"msg":"hi","msgFrom":"alice","msgDateTime":"0001-01-01T00:00:00Z"}}`)

	require.Equal(t, http.StatusOK, w.Code, env.Error)
	assert.Contains(t, string(env.Data), `"msgDateTime":"0001-01-01T00:00:00Z"`)
}

func TestMessageHandler_EmptyListIsArray(t *testing.T) {
	r := newMemoryRouter()

	_, env := do(t, r, http.MethodGet, "/messaging/getMessages", "")

	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestMessageHandler_Rejections(t *testing.T) {
	r := newMemoryRouter()

	cases := []struct {
		name, body, want string
	}{
		{"malformed", `{"messageToAdd":`, "Invalid request"},
		{"missing messageToAdd", `{}`, "Invalid request"},
		{"empty msg", `{"messageToAdd":{"msg":"","msgFrom":"a","msgDateTime":"2024-06-06T00:00:00Z"}}`, "Invalid request"},
		{"missing sender", `{"messageToAdd":{"msg":"hi","msgDateTime":"2024-06-06T00:00:00Z"}}`, "Invalid message body"},
		{"missing timestamp", `{"messageToAdd":{"msg":"hi","msgFrom":"a"}}`, "Invalid message body"},
		{"bad timestamp", `{"messageToAdd":{"msg":"hi","msgFrom":"a","msgDateTime":"yesterday"}}`, "Invalid message body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/messaging/addMessage", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, env.Error)
		})
	}

	_, env := do(t, r, http.MethodGet, "/messaging/getMessages", "")
	assert.JSONEq(t, `[]`, string(env.Data), "rejected messages are never stored")
}

type mockMessageService struct {
	mock.Mock
}

func (m *mockMessageService) SaveMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(message.Message), args.Error(1)
}

func (m *mockMessageService) GetMessages(ctx context.Context) []message.Message {
	return m.Called(ctx).Get(0).([]message.Message)
}

func TestMessageHandler_SaveFailure(t *testing.T) {
	svc := new(mockMessageService)
	svc.On("SaveMessage", mock.Anything, mock.Anything).
		Return(message.Message{}, errors.Join(chat_errors.ErrPersistence, errors.New("db down")))
	r := newRouter(services.NewUserService(repository.NewMemoryStore().Users(), logger.NewNop()), svc)

	w, env := do(t, r, http.MethodPost, "/messaging/addMessage",
		`{"messageToAdd":{"msg":"hi","msgFrom":"a","msgDateTime":"2024-06-06T00:00:00Z"}}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", env.Code)
	svc.AssertExpectations(t)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", errorCode(chat_errors.ErrNotFound))
	assert.Equal(t, "CONFLICT", errorCode(chat_errors.ErrConflict))
	assert.Equal(t, "INTERNAL_ERROR", errorCode(chat_errors.ErrPersistence))
	assert.Equal(t, "INVALID_REQUEST", errorCode(chat_errors.ErrInvalidInput))

	var _ UserService = (*services.UserService)(nil)
}
